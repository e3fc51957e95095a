package tz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	loc, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())

	loc, err = Load("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = Load("Mars/Olympus")
	assert.Error(t, err)
}
