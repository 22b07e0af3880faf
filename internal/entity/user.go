package entity

import "context"

// SalesRep is the owning user of a lead. Authentication and sessions are
// handled upstream; this service only needs identity and contact details.
type SalesRep struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Region string `json:"region,omitempty"`
	Active bool   `json:"active"`
}

type SalesRepRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*SalesRep, error)
	Exists(ctx context.Context, id string) (bool, error)
}
