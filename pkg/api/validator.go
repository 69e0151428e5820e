package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// MaxNameLength ограничивает длину имени сущности.
const MaxNameLength = 64

var errTargetRequired = errors.New("targetId is required")

func (p EntityPayload) Validate() error {
	if p.TargetID == "" {
		return errTargetRequired
	}
	return nil
}

func (p RenamePayload) Validate() error {
	if p.TargetID == "" {
		return errTargetRequired
	}
	if p.Name == "" {
		return errors.New("name cannot be empty")
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("name too long")
	}
	return nil
}

func (p SetOwnerPayload) Validate() error {
	if p.TargetID == "" {
		return errTargetRequired
	}
	if p.Owner < 0 || p.Owner > 255 {
		return errors.New("owner out of range")
	}
	return nil
}

func (p SetPopulationPayload) Validate() error {
	if p.TargetID == "" {
		return errTargetRequired
	}
	if p.Population < 0 {
		return errors.New("population cannot be negative")
	}
	return nil
}
