// Package models contains GORM persistence models for the catering tables.
// Domain types carry no ORM tags; each model converts with ToDomain and
// FromDomain, and repositories read and write models only.
package models
