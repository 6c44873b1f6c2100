package store

// Optional is a three-state update field. Its zero value means "leave the
// stored value unchanged"; a set Optional carries the replacement value.
// For nullable columns the value type is a pointer, so Set((*string)(nil))
// clears the column — distinct from leaving it untouched.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Set returns an Optional carrying v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// UserUpdate describes a partial update of a user. Only fields marked
// valid are written; the rest keep their stored values. LastName and
// Username are nullable: setting them to a nil pointer clears them.
type UserUpdate struct {
	Language  Optional[string]
	FirstName Optional[string]
	LastName  Optional[*string]
	Username  Optional[*string]
}

// IsZero reports whether the update touches no fields at all.
func (u UserUpdate) IsZero() bool {
	return !u.Language.Valid && !u.FirstName.Valid && !u.LastName.Valid && !u.Username.Valid
}
