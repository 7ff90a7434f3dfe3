package tag

import (
	"errors"
	"fmt"
	"strings"

	"tagtime/internal/validate"
)

// MaxTags is the size limit of the catalog.
const MaxTags = 5

var (
	ErrLimit     = fmt.Errorf("at most %d tags allowed", MaxTags)
	ErrDuplicate = errors.New("tag already exists")
	ErrLastTag   = errors.New("at least one tag required")
	ErrNotFound  = errors.New("tag not found")
)

// Default is seeded into an empty catalog.
var Default = Tag{Name: "Work", Color: "#3498db"}

// Tag is a named, colored category. The name is its identity.
type Tag struct {
	Name  string `validate:"required,max=20"`
	Color string `validate:"required,hexcolor,len=7"`
}

func New(name, color string) (Tag, error) {
	t := Tag{
		Name:  strings.TrimSpace(name),
		Color: strings.ToLower(strings.TrimSpace(color)),
	}
	if err := validate.Struct(t); err != nil {
		return Tag{}, fmt.Errorf("invalid tag: %w", err)
	}
	return t, nil
}

// Find returns the tag with the given name.
func Find(tags []Tag, name string) (Tag, bool) {
	for _, t := range tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// CheckAdd reports whether t may be added to the catalog.
func CheckAdd(tags []Tag, t Tag) error {
	if len(tags) >= MaxTags {
		return ErrLimit
	}
	if _, ok := Find(tags, t.Name); ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, t.Name)
	}
	return nil
}

// CheckDelete reports whether the named tag may be removed from the catalog.
func CheckDelete(tags []Tag, name string) error {
	if _, ok := Find(tags, name); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if len(tags) == 1 {
		return ErrLastTag
	}
	return nil
}
