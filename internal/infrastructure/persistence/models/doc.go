// Package models contains GORM-specific persistence models that map to database tables.
// The domain aggregate carries no ORM tags; mappers here convert between the
// two so the domain layer stays free of storage concerns.
package models
