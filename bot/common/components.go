package common

import (
	"github.com/bwmarrin/discordgo"
)

// ModalTextValue extracts the value of a text input from a modal submission.
// Returns an empty string when the input is absent.
func ModalTextValue(i *discordgo.InteractionCreate, customID string) string {
	for _, component := range i.ModalSubmitData().Components {
		actionRow, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionRow.Components {
			if textInput, ok := comp.(*discordgo.TextInput); ok && textInput.CustomID == customID {
				return textInput.Value
			}
		}
	}
	return ""
}

// SelectedValue extracts the first selected value of a select menu
// interaction. Returns an empty string when nothing was selected.
func SelectedValue(i *discordgo.InteractionCreate) string {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
