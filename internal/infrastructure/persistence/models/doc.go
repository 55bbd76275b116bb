// Package models contains GORM persistence models for the plant snapshot.
// Models are separate from domain values so the domain stays free of ORM
// tags. Each model has ToDomain and FromDomain mappers; Position keeps the
// ordering of the in-memory collections across a save and load.
package models
