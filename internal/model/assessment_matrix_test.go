package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigationModeOr(t *testing.T) {
	var m AssessmentMatrix
	assert.Equal(t, NavigationSequential, m.NavigationModeOr(NavigationSequential))

	m.Configuration = &AssessmentConfiguration{AutoSave: true}
	assert.Equal(t, NavigationFreeForm, m.NavigationModeOr(NavigationFreeForm))

	m.Configuration.NavigationMode = NavigationRandom
	assert.Equal(t, NavigationRandom, m.NavigationModeOr(NavigationSequential))
}
