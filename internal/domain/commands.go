package domain

import "geoquiz-service/internal/geo"

// CommandType names a view update the map client must perform.
type CommandType string

const (
	CmdClearMarkers    CommandType = "clearMarkers"
	CmdPlaceMarker     CommandType = "placeMarker"
	CmdDrawLine        CommandType = "drawLine"
	CmdSetInstructions CommandType = "setInstructions"
	CmdSetStatus       CommandType = "setStatus"
	CmdAppendStatus    CommandType = "appendStatus"
	CmdResetForm       CommandType = "resetForm"
	CmdShowForm        CommandType = "showForm"
	CmdShowDifficulty  CommandType = "showDifficulty"
)

// MarkerTag selects the marker style on the map surface.
type MarkerTag string

const (
	// MarkerPin is the default pin: the explore click, the placed guess, or the shown point.
	MarkerPin    MarkerTag = "pin"
	MarkerTarget MarkerTag = "target"
	MarkerGuess  MarkerTag = "guess"
	MarkerLine   MarkerTag = "line"
)

// Form names one of the input panels.
type Form string

const (
	FormNone   Form = "none"
	FormGuess  Form = "guess"
	FormSubmit Form = "submit"
)

// Command is one render instruction. Points are in decimal degrees.
type Command struct {
	Type    CommandType `json:"type"`
	Tag     MarkerTag   `json:"tag,omitempty"`
	Points  []geo.Point `json:"points,omitempty"`
	Text    string      `json:"text,omitempty"`
	Form    Form        `json:"form,omitempty"`
	Visible bool        `json:"visible,omitempty"`
}

func ClearMarkers() Command { return Command{Type: CmdClearMarkers} }

func PlaceMarker(tag MarkerTag, p geo.Point) Command {
	return Command{Type: CmdPlaceMarker, Tag: tag, Points: []geo.Point{p}}
}

func DrawLine(from, to geo.Point) Command {
	return Command{Type: CmdDrawLine, Tag: MarkerLine, Points: []geo.Point{from, to}}
}

func SetInstructions(text string) Command { return Command{Type: CmdSetInstructions, Text: text} }

// SetStatus replaces the status region; an empty text clears it.
func SetStatus(text string) Command { return Command{Type: CmdSetStatus, Text: text} }

func AppendStatus(text string) Command { return Command{Type: CmdAppendStatus, Text: text} }

func ResetForm() Command { return Command{Type: CmdResetForm} }

func ShowForm(f Form) Command { return Command{Type: CmdShowForm, Form: f} }

func ShowDifficulty(visible bool) Command {
	return Command{Type: CmdShowDifficulty, Visible: visible}
}
