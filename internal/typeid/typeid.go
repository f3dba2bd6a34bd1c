package typeid

import (
	"fmt"
	"strings"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixElement = "el"
	PrefixSession = "sess"
	PrefixUser    = "user"
	PrefixToast   = "toast"
)

// sessionCodeLen is the number of characters shown to users when sharing a board.
const sessionCodeLen = 8

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewElementID() string { return New(PrefixElement) }
func NewSessionID() string { return New(PrefixSession) }
func NewUserID() string    { return New(PrefixUser) }
func NewToastID() string   { return New(PrefixToast) }

// NewSessionCode returns a short uppercase join code. It is taken from the
// random tail of a session typeid so codes share the id's entropy source.
func NewSessionCode() string {
	id := NewSessionID()
	suffix := id[strings.LastIndexByte(id, '_')+1:]
	return strings.ToUpper(suffix[len(suffix)-sessionCodeLen:])
}

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
