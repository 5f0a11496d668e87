package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := New()
	v.Required("name", "Alice")
	v.Required("email", "  ")
	assert.False(t, v.Valid())
	assert.Contains(t, v.Errors, "email")
	assert.NotContains(t, v.Errors, "name")
}

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@x.edu", true},
		{"first.last+tag@sub.domain.org", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@x.edu", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			v := New()
			v.Email("email", tt.email)
			assert.Equal(t, tt.valid, v.Valid())
		})
	}
}

func TestMobile(t *testing.T) {
	tests := []struct {
		mobile string
		valid  bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"12345", false},
		{"not-a-number", false},
	}

	for _, tt := range tests {
		t.Run(tt.mobile, func(t *testing.T) {
			v := New()
			v.Mobile("mobileNumber", tt.mobile)
			assert.Equal(t, tt.valid, v.Valid())
		})
	}
}

func TestOneOfAndHostelBlock(t *testing.T) {
	v := New()
	v.OneOf("hostelType", "Male", "Male", "Female")
	v.HostelBlock("hostelBlock", "A Block")
	assert.True(t, v.Valid())

	v = New()
	v.OneOf("hostelType", "Other", "Male", "Female")
	v.HostelBlock("hostelBlock", "Z Block")
	assert.Contains(t, v.Errors, "hostelType")
	assert.Contains(t, v.Errors, "hostelBlock")
}

func TestMaxLength(t *testing.T) {
	v := New()
	v.MaxLength("title", "Physics Notes", 100)
	assert.True(t, v.Valid())

	v = New()
	v.MaxLength("title", strings.Repeat("x", 101), 100)
	assert.Contains(t, v.Errors, "title")
}

func TestNonNegative(t *testing.T) {
	v := New()
	v.NonNegative("price", 0)
	v.NonNegative("other", 10)
	assert.True(t, v.Valid())

	v = New()
	v.NonNegative("price", -1)
	assert.False(t, v.Valid())
}

func TestFirstReturnsSomeError(t *testing.T) {
	v := New()
	assert.Empty(t, v.First())

	v.AddError("a", "broken")
	assert.Equal(t, "broken", v.First())
}
