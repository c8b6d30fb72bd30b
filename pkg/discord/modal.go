package discord

import "github.com/bwmarrin/discordgo"

// ExtractRegisterModalData pulls the Neuling answer and the optional
// companion name out of the registration modal submission.
func ExtractRegisterModalData(data discordgo.ModalSubmitInteractionData) (neuling, partner string) {
	if len(data.Components) >= 1 {
		if row, ok := data.Components[0].(*discordgo.ActionsRow); ok && len(row.Components) > 0 {
			if input, ok := row.Components[0].(*discordgo.TextInput); ok {
				neuling = input.Value
			}
		}
	}
	if len(data.Components) >= 2 {
		if row, ok := data.Components[1].(*discordgo.ActionsRow); ok && len(row.Components) > 0 {
			if input, ok := row.Components[0].(*discordgo.TextInput); ok {
				partner = input.Value
			}
		}
	}
	return
}
