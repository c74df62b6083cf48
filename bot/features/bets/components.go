package bets

import (
	"fmt"
	"strconv"

	"betleague/api"
	"betleague/bot/common"

	"github.com/bwmarrin/discordgo"
)

// buildDayComponents builds the selects and buttons under the day embed:
// a match day picker, a fixture picker, and the outcome buttons for the
// currently picked fixture
func buildDayComponents(state *viewState, day *DayState) []discordgo.MessageComponent {
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{buildDateSelect(state, day)},
		},
	}

	if len(day.Games) > 0 {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{buildFixtureSelect(state, day)},
		})
	}

	if game := day.GameByID(state.SelectedGame); game != nil {
		components = append(components, discordgo.ActionsRow{
			Components: buildOutcomeButtons(day, game),
		})
	}

	return components
}

func buildDateSelect(state *viewState, day *DayState) discordgo.SelectMenu {
	var options []discordgo.SelectMenuOption
	for _, date := range state.Dates {
		if len(options) == common.MaxSelectOptions {
			break
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:   common.FormatMatchDay(date),
			Value:   date,
			Default: date == day.Date,
		})
	}

	return discordgo.SelectMenu{
		CustomID:    "bets_date",
		Placeholder: "Switch match day",
		Options:     options,
	}
}

func buildFixtureSelect(state *viewState, day *DayState) discordgo.SelectMenu {
	var options []discordgo.SelectMenuOption
	for _, game := range day.Games {
		if len(options) == common.MaxSelectOptions {
			break
		}

		description := "No bet yet"
		if bet := day.BetForGame(game.ID); bet != nil {
			description = fmt.Sprintf("Your bet: %s, %s points",
				choiceLabel(&game, bet.BetChoice), common.FormatBudget(bet.BetAmount))
		}

		options = append(options, discordgo.SelectMenuOption{
			Label:       common.Truncate(common.FormatFixture(game.Team1, game.Team2, nil, nil), 100),
			Value:       strconv.FormatInt(game.ID, 10),
			Description: description,
			Default:     game.ID == state.SelectedGame,
		})
	}

	return discordgo.SelectMenu{
		CustomID:    "bets_pick",
		Placeholder: "Pick a fixture",
		Options:     options,
	}
}

// buildOutcomeButtons builds team1 / draw / team2 buttons plus a withdraw
// button when an editable bet exists
func buildOutcomeButtons(day *DayState, game *api.Game) []discordgo.MessageComponent {
	bet := day.BetForGame(game.ID)
	locked := bet != nil && !bet.Editable()

	styleFor := func(choice string) discordgo.ButtonStyle {
		if bet != nil && bet.BetChoice == choice {
			return discordgo.SuccessButton
		}
		return discordgo.SecondaryButton
	}

	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    common.Truncate(game.Team1, 80),
			Style:    styleFor(api.ChoiceTeam1),
			CustomID: fmt.Sprintf("bets_choice_%d_%s", game.ID, api.ChoiceTeam1),
			Disabled: locked,
		},
		discordgo.Button{
			Label:    "Draw",
			Style:    styleFor(api.ChoiceDraw),
			CustomID: fmt.Sprintf("bets_choice_%d_%s", game.ID, api.ChoiceDraw),
			Disabled: locked,
		},
		discordgo.Button{
			Label:    common.Truncate(game.Team2, 80),
			Style:    styleFor(api.ChoiceTeam2),
			CustomID: fmt.Sprintf("bets_choice_%d_%s", game.ID, api.ChoiceTeam2),
			Disabled: locked,
		},
	}

	if bet != nil {
		buttons = append(buttons, discordgo.Button{
			Label:    "Withdraw",
			Style:    discordgo.DangerButton,
			CustomID: fmt.Sprintf("bets_withdraw_%d", bet.ID),
			Disabled: locked,
		})
	}

	return buttons
}

// buildStakeModal asks for the amount to put on the chosen outcome
func buildStakeModal(game *api.Game, choice string, maxStake int64) *discordgo.InteractionResponseData {
	title := common.Truncate(fmt.Sprintf("Bet: %s", choiceLabel(game, choice)), 45)

	return &discordgo.InteractionResponseData{
		CustomID: fmt.Sprintf("bets_amount_modal_%d_%s", game.ID, choice),
		Title:    title,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "amount",
						Label:       fmt.Sprintf("Stake (max %d)", maxStake),
						Style:       discordgo.TextInputShort,
						Placeholder: fmt.Sprintf("1 - %d", maxStake),
						Required:    true,
						MinLength:   1,
						MaxLength:   10,
					},
				},
			},
		},
	}
}
