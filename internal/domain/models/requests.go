package models

// Requests for pipeline HTTP endpoints. Defined in domain for consistency and reuse.

type BundleRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=12"`
	Seq    int64  `query:"seq" json:"seq" validate:"gte=0"`
}

type SuggestRequest struct {
	Query string `query:"q" json:"q" validate:"max=64"`
	Seq   int64  `query:"seq" json:"seq" validate:"gte=0"`
}
