package model

// Record is the value persisted under a slug.
type Record struct {
	OwnerSecret string `json:"owner_secret"`
	Target      string `json:"target"`
}

// CreateRequest is the body accepted by the create endpoint. A nil
// MasterSecret means the field was absent.
type CreateRequest struct {
	MasterSecret *string `json:"master_secret,omitempty"`
	Target       string  `json:"target"`
}

// CreateResponse is returned once to the creator of a record.
type CreateResponse struct {
	Slug        string `json:"slug"`
	OwnerSecret string `json:"owner_secret"`
}
