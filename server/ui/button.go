// Package ui holds small presentational pieces shared by the server templates.
package ui

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Button is the generic call-to-action button.
type Button struct {
	Primary         bool   // principal call to action on the page
	Size            Size   // defaults to medium
	BackgroundColor string // optional CSS colour
	Label           string
	Type            string // button, submit; defaults to button
	Disabled        bool
	ID              string
}

var cssColour = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|rgba?\([0-9.,\s%]+\))$`)

func (b Button) size() Size {
	switch b.Size {
	case SizeSmall, SizeMedium, SizeLarge:
		return b.Size
	}
	return SizeMedium
}

// Classes returns the class list for the button's mode and size.
func (b Button) Classes() string {
	mode := "button--secondary"
	if b.Primary {
		mode = "button--primary"
	}
	return strings.Join([]string{"button", "button--" + string(b.size()), mode}, " ")
}

// Style returns the inline background style, empty for unknown colour syntax.
func (b Button) Style() template.CSS {
	if b.BackgroundColor == "" || !cssColour.MatchString(b.BackgroundColor) {
		return ""
	}
	return template.CSS("background-color: " + b.BackgroundColor)
}

func (b Button) ButtonType() string {
	if b.Type == "" {
		return "button"
	}
	return b.Type
}

var buttonTmpl = template.Must(template.New("button").Parse(
	`<button type="{{.ButtonType}}" class="{{.Classes}}"{{with .Style}} style="{{.}}"{{end}}` +
		`{{with .ID}} id="{{.}}"{{end}}{{if .Disabled}} disabled{{end}}>{{.Label}}</button>`))

// HTML renders the button markup.
func (b Button) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := buttonTmpl.Execute(&buf, b); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
