package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("3f1c2a9e-1b2c-4d5e-8f90-123456789abc", "tab_id", true))
	assert.NoError(t, ValidateID("", "tab_id", false))
	assert.Error(t, ValidateID("", "tab_id", true))
	assert.Error(t, ValidateID("../etc", "tab_id", true))
	assert.Error(t, ValidateID(strings.Repeat("a", MaxIDLength+1), "tab_id", true))
}

func TestValidateToolID(t *testing.T) {
	assert.NoError(t, ValidateToolID("browser.navigate", "tool_id", true))
	assert.Error(t, ValidateToolID("browser navigate", "tool_id", true))
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory("browser", false))
	assert.NoError(t, ValidateCategory("", false))
	assert.Error(t, ValidateCategory("Browser!", false))
}

func TestValidateAddressAndQuery(t *testing.T) {
	assert.NoError(t, ValidateAddress("facelook"))
	assert.Error(t, ValidateAddress("   "))
	assert.Error(t, ValidateAddress("a\x00b"))

	assert.NoError(t, ValidateQuery("john doe"))
	assert.Error(t, ValidateQuery(strings.Repeat("q", MaxQueryLength+1)))
}
