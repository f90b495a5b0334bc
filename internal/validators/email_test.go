package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@barbearia.com", NormalizeEmail("  Ana@Barbearia.COM "))
}

func TestIsEmailSyntaxValid(t *testing.T) {
	assert.True(t, IsEmailSyntaxValid("ana@barbearia.com"))
	assert.False(t, IsEmailSyntaxValid("Ana <ana@barbearia.com>"))
	assert.False(t, IsEmailSyntaxValid("ana@localhost"))
	assert.False(t, IsEmailSyntaxValid("not-an-email"))
	assert.False(t, IsEmailSyntaxValid(""))
}

func TestIsEmailDomainValid_Malformed(t *testing.T) {
	assert.False(t, IsEmailDomainValid("no-at-sign"))
	assert.False(t, IsEmailDomainValid("trailing@"))
}
