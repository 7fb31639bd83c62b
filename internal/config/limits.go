package config

const (
	// MaxItemNameLength is the maximum length for file and folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxItemNameLength = 255

	// MaxUserIDLength bounds member user ids.
	MaxUserIDLength = 64

	// MaxUserNameLength bounds member display names.
	MaxUserNameLength = 100
)
