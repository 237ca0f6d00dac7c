package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vehicle-status-backend/internal/adapter"
)

func TestComponents(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  []adapter.Component
		expectErr bool
	}{
		{name: "empty selects all", raw: "", expected: nil},
		{name: "single", raw: "doors", expected: []adapter.Component{adapter.ComponentDoors}},
		{name: "several", raw: "doors,tyres", expected: []adapter.Component{adapter.ComponentDoors, adapter.ComponentTyres}},
		{name: "spaces and case", raw: " Lights , WINDOWS ", expected: []adapter.Component{adapter.ComponentLights, adapter.ComponentWindows}},
		{name: "duplicates", raw: "doors,doors", expected: []adapter.Component{adapter.ComponentDoors}},
		{name: "trailing comma", raw: "doors,", expected: []adapter.Component{adapter.ComponentDoors}},
		{name: "unknown", raw: "doors,sunroof", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Components(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestDetailLevel(t *testing.T) {
	testCases := []struct {
		raw       string
		expected  adapter.DetailLevel
		expectErr bool
	}{
		{raw: "", expected: adapter.DetailBasic},
		{raw: "basic", expected: adapter.DetailBasic},
		{raw: "FULL", expected: adapter.DetailFull},
		{raw: " all ", expected: adapter.DetailAll},
		{raw: "everything", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			result, err := DetailLevel(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestParams(t *testing.T) {
	params, err := Params([]string{"target_temperature=21.5", "duration_seconds=10", "note=front door", "force=true"})
	assert.NoError(t, err)
	assert.Equal(t, adapter.Params{
		"target_temperature": 21.5,
		"duration_seconds":   10.0,
		"note":               "front door",
		"force":              true,
	}, params)

	empty, err := Params(nil)
	assert.NoError(t, err)
	assert.Empty(t, empty)

	for _, bad := range []string{"novalue", "=5", "Bad-Key=1"} {
		_, err := Params([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestLimit(t *testing.T) {
	n, err := Limit("", 20, 100)
	assert.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = Limit("500", 20, 100)
	assert.NoError(t, err)
	assert.Equal(t, 100, n)

	_, err = Limit("-1", 20, 100)
	assert.Error(t, err)
	_, err = Limit("ten", 20, 100)
	assert.Error(t, err)
}
