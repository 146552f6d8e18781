package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpret_JSONObject(t *testing.T) {
	cases, err := Interpret(`{"test_cases": ["a", "b"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cases)
}

func TestInterpret_JSONObject_PreservesOrder(t *testing.T) {
	cases, err := Interpret(`{"test_cases": ["Verify login", "Verify logout", "Verify lockout"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Verify login", "Verify logout", "Verify lockout"}, cases)
}

func TestInterpret_JSONArray(t *testing.T) {
	cases, err := Interpret(`["first", "second"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, cases)
}

func TestInterpret_JSONObject_Empty(t *testing.T) {
	cases, err := Interpret(`{"test_cases": []}`)
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestInterpret_SurroundingWhitespace(t *testing.T) {
	cases, err := Interpret("\n  {\"test_cases\": [\"a\"]}  \n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, cases)
}

func TestInterpret_ProseFallback(t *testing.T) {
	raw := "  Verify that the user can log in.  \n\nVerify wrong password is rejected.\n\tVerify account lockout.\n"
	cases, err := Interpret(raw)
	require.NoError(t, err)
	require.Len(t, cases, 3)
	assert.Equal(t, "Verify that the user can log in.", cases[0])
	assert.Equal(t, "Verify wrong password is rejected.", cases[1])
	assert.Equal(t, "Verify account lockout.", cases[2])
}

func TestInterpret_ValidJSONWrongShapeFallsBack(t *testing.T) {
	// An object without a test_cases array is not one of the accepted
	// shapes, so it degrades to the line splitter.
	cases, err := Interpret(`{"cases": ["a"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"cases": ["a"]}`}, cases)
}

func TestInterpret_EmptyResponse(t *testing.T) {
	_, err := Interpret("   \n \t \n")
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}
