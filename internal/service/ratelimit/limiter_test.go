package ratelimit

import "testing"

func TestAllowExhaustsBucket(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("client-a", 3, 0) {
			t.Fatalf("request %d rejected within capacity", i)
		}
	}
	if l.Allow("client-a", 3, 0) {
		t.Fatal("request allowed past capacity")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		l.Allow("client-a", 3, 0)
	}
	if !l.Allow("client-b", 3, 0) {
		t.Fatal("fresh key rejected")
	}
}
