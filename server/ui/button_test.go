package ui_test

import (
	"testing"

	"github.com/jrsteele09/go-onboarding-server/server/ui"
	"github.com/stretchr/testify/require"
)

func TestButton_Classes(t *testing.T) {
	require.Equal(t, "button button--medium button--secondary", ui.Button{Label: "Go"}.Classes())
	require.Equal(t, "button button--large button--primary", ui.Button{Primary: true, Size: ui.SizeLarge}.Classes())
	require.Equal(t, "button button--medium button--secondary", ui.Button{Size: "huge"}.Classes())
}

func TestButton_Style(t *testing.T) {
	require.Equal(t, "background-color: #0ea5e9", string(ui.Button{BackgroundColor: "#0ea5e9"}.Style()))
	require.Equal(t, "background-color: teal", string(ui.Button{BackgroundColor: "teal"}.Style()))
	require.Empty(t, string(ui.Button{BackgroundColor: "red; position: fixed"}.Style()))
	require.Empty(t, string(ui.Button{}.Style()))
}

func TestButton_HTML(t *testing.T) {
	html, err := ui.Button{
		Primary:  true,
		Label:    "Submit <now>",
		Type:     "submit",
		Disabled: true,
	}.HTML()
	require.NoError(t, err)

	out := string(html)
	require.Contains(t, out, `type="submit"`)
	require.Contains(t, out, `class="button button--medium button--primary"`)
	require.Contains(t, out, ` disabled>`)
	require.Contains(t, out, "Submit &lt;now&gt;")
	require.NotContains(t, out, "style=")
}

func TestButton_HTMLWithColourAndID(t *testing.T) {
	html, err := ui.Button{
		Label:           "Pick",
		BackgroundColor: "teal",
		ID:              "pick-button",
	}.HTML()
	require.NoError(t, err)

	out := string(html)
	require.Contains(t, out, `type="button"`)
	require.Contains(t, out, `style="background-color: teal"`)
	require.Contains(t, out, `id="pick-button"`)
	require.NotContains(t, out, "disabled")
}
