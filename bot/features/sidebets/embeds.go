package sidebets

import (
	"fmt"
	"sort"

	"betleague/api"
	"betleague/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// renderOverview builds the side bets overview: one field per offered bet
// with its deadline, reward and the user's current pick
func renderOverview(state *viewState) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: "🎯 Side Bets",
		Color: common.ColorPrimary,
	}

	if len(state.Offered) == 0 {
		embed.Description = "No side bets are offered right now."
		return &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
			Flags:      discordgo.MessageFlagsEphemeral,
		}
	}

	options := make([]discordgo.SelectMenuOption, 0, len(state.Offered))
	for _, sb := range state.Offered {
		summary := pickSummary(state, &sb)
		value := fmt.Sprintf("⏰ %s · 🏅 %s points\n%s%s",
			common.FormatDiscordTimestamp(sb.LastTimeToBet.Time, "f"),
			common.FormatPoints(sb.Reward),
			summary,
			lockSuffix(&sb),
		)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s", typeEmoji(sb.SideBetType), common.Truncate(sb.Question, 200)),
			Value: value,
		})

		if len(options) < common.MaxSelectOptions {
			options = append(options, discordgo.SelectMenuOption{
				Label:       common.Truncate(sb.Question, 100),
				Value:       fmt.Sprintf("%d", sb.ID),
				Description: common.Truncate(summary, 100),
			})
		}
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    "sidebet_open",
					Placeholder: "Open a side bet",
					Options:     options,
				},
			},
		},
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		Flags:      discordgo.MessageFlagsEphemeral,
	}
}

// renderSideBet builds the detail view for the opened side bet
func renderSideBet(state *viewState) *discordgo.InteractionResponseData {
	sb := state.currentSideBet()
	if sb == nil {
		return renderOverview(state)
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s", typeEmoji(sb.SideBetType), sb.Question),
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "⏰ Deadline",
				Value:  common.FormatDiscordTimestamp(sb.LastTimeToBet.Time, "f"),
				Inline: true,
			},
			{
				Name:   "🏅 Reward",
				Value:  common.FormatPoints(sb.Reward) + " points",
				Inline: true,
			},
			{
				Name:   "Your pick",
				Value:  pickSummary(state, sb) + lockSuffix(sb),
				Inline: true,
			},
		},
	}

	var components []discordgo.MessageComponent
	switch sb.SideBetType {
	case api.SideBetChampion:
		components = championComponents(state, sb)
	case api.SideBetTopScorer, api.SideBetTopAssister:
		components = scorerComponents(state, sb)
	case api.SideBetQualifiers:
		components = qualifierComponents(state, sb)
		addQualifierFields(embed, state)
	default:
		log.Warnf("Unknown side bet type %q", sb.SideBetType)
	}

	components = append(components, backRow(state, sb))

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		Flags:      discordgo.MessageFlagsEphemeral,
	}
}

// championComponents is a single team select with the current pick marked
func championComponents(state *viewState, sb *api.SideBet) []discordgo.MessageComponent {
	teams, err := sb.OptionTeams()
	if err != nil {
		log.Errorf("Bad champion options for side bet %d: %v", sb.ID, err)
		return nil
	}

	current := ""
	if pick := state.pickFor(sb.ID); pick != nil {
		current, _ = pick.ChoiceTeam()
	}

	options := make([]discordgo.SelectMenuOption, 0, len(teams))
	for _, team := range teams {
		if len(options) == common.MaxSelectOptions {
			break
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:   common.Truncate(team, 100),
			Value:   team,
			Default: team == current,
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    fmt.Sprintf("sidebet_team_%d", sb.ID),
					Placeholder: "Pick the champion",
					Options:     options,
					Disabled:    !sb.Editable(),
				},
			},
		},
	}
}

// scorerComponents is a team select, then a player select once a team is
// chosen. An existing pick preselects both.
func scorerComponents(state *viewState, sb *api.SideBet) []discordgo.MessageComponent {
	players, err := sb.OptionTeamPlayers()
	if err != nil {
		log.Errorf("Bad player options for side bet %d: %v", sb.ID, err)
		return nil
	}

	teams := make([]string, 0, len(players))
	for team := range players {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	var pickedTeam, pickedPlayer string
	if pick := state.pickFor(sb.ID); pick != nil {
		if choice, err := pick.ChoiceTeamPlayer(); err == nil {
			pickedTeam, pickedPlayer = choice.Team, choice.Player
		}
	}

	shownTeam := state.ScorerTeam
	if shownTeam == "" {
		shownTeam = pickedTeam
	}

	teamOptions := make([]discordgo.SelectMenuOption, 0, len(teams))
	for _, team := range teams {
		if len(teamOptions) == common.MaxSelectOptions {
			break
		}
		teamOptions = append(teamOptions, discordgo.SelectMenuOption{
			Label:   common.Truncate(team, 100),
			Value:   team,
			Default: team == shownTeam,
		})
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    fmt.Sprintf("sidebet_pteam_%d", sb.ID),
					Placeholder: "Pick a team",
					Options:     teamOptions,
					Disabled:    !sb.Editable(),
				},
			},
		},
	}

	if shownTeam == "" {
		return components
	}

	playerOptions := make([]discordgo.SelectMenuOption, 0, len(players[shownTeam]))
	for _, player := range players[shownTeam] {
		if len(playerOptions) == common.MaxSelectOptions {
			break
		}
		playerOptions = append(playerOptions, discordgo.SelectMenuOption{
			Label:   common.Truncate(player, 100),
			Value:   player,
			Default: shownTeam == pickedTeam && player == pickedPlayer,
		})
	}
	if len(playerOptions) == 0 {
		return components
	}

	return append(components, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    fmt.Sprintf("sidebet_player_%d", sb.ID),
				Placeholder: fmt.Sprintf("Pick a player from %s", common.Truncate(shownTeam, 80)),
				Options:     playerOptions,
				Disabled:    !sb.Editable(),
			},
		},
	})
}

// qualifierComponents is a slot select and a team select over the remaining
// pool, plus submit and reset buttons
func qualifierComponents(state *viewState, sb *api.SideBet) []discordgo.MessageComponent {
	if state.Qualifiers == nil {
		return nil
	}

	slotOptions := make([]discordgo.SelectMenuOption, 0, common.QualifierSlots)
	for slot := 1; slot <= common.QualifierSlots; slot++ {
		description := "Empty"
		if team := state.Qualifiers.Team(slot); team != "" {
			description = team
		}
		slotOptions = append(slotOptions, discordgo.SelectMenuOption{
			Label:       fmt.Sprintf("Slot %d", slot),
			Value:       fmt.Sprintf("%d", slot),
			Description: common.Truncate(description, 100),
			Default:     slot == state.QualSlot,
		})
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    fmt.Sprintf("qual_slot_%d", sb.ID),
					Placeholder: "Pick a slot",
					Options:     slotOptions,
					Disabled:    !sb.Editable(),
				},
			},
		},
	}

	available := state.Qualifiers.Available()
	if len(available) > 0 && state.QualSlot != 0 {
		teamOptions := make([]discordgo.SelectMenuOption, 0, len(available))
		for _, team := range available {
			if len(teamOptions) == common.MaxSelectOptions {
				break
			}
			teamOptions = append(teamOptions, discordgo.SelectMenuOption{
				Label: common.Truncate(team, 100),
				Value: team,
			})
		}
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    fmt.Sprintf("qual_team_%d", sb.ID),
					Placeholder: fmt.Sprintf("Team for slot %d", state.QualSlot),
					Options:     teamOptions,
					Disabled:    !sb.Editable(),
				},
			},
		})
	}

	components = append(components, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Submit bracket",
				Style:    discordgo.SuccessButton,
				CustomID: fmt.Sprintf("qual_submit_%d", sb.ID),
				Disabled: !state.Qualifiers.Complete() || !sb.Editable(),
			},
			discordgo.Button{
				Label:    "Reset",
				Style:    discordgo.SecondaryButton,
				CustomID: fmt.Sprintf("qual_reset_%d", sb.ID),
				Disabled: !sb.Editable(),
			},
		},
	})

	return components
}

// addQualifierFields shows the bracket slots on the embed
func addQualifierFields(embed *discordgo.MessageEmbed, state *viewState) {
	if state.Qualifiers == nil {
		return
	}

	value := ""
	for slot := 1; slot <= common.QualifierSlots; slot++ {
		team := state.Qualifiers.Team(slot)
		if team == "" {
			team = "*empty*"
		}
		marker := ""
		if slot == state.QualSlot {
			marker = " ⬅️"
		}
		value += fmt.Sprintf("`%d.` %s%s\n", slot, team, marker)
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Bracket",
		Value: value,
	})
}

// backRow holds the withdraw and back buttons
func backRow(state *viewState, sb *api.SideBet) discordgo.MessageComponent {
	row := discordgo.ActionsRow{}

	if pick := state.pickFor(sb.ID); pick != nil && sb.Editable() {
		row.Components = append(row.Components, discordgo.Button{
			Label:    "Withdraw pick",
			Style:    discordgo.DangerButton,
			CustomID: fmt.Sprintf("sidebet_clear_%d", sb.ID),
		})
	}

	row.Components = append(row.Components, discordgo.Button{
		Label:    "Back to overview",
		Style:    discordgo.SecondaryButton,
		CustomID: "sidebet_back",
	})

	return row
}

// pickSummary describes the user's pick for one side bet
func pickSummary(state *viewState, sb *api.SideBet) string {
	pick := state.pickFor(sb.ID)
	if pick == nil {
		return "No pick yet"
	}

	switch sb.SideBetType {
	case api.SideBetChampion:
		team, err := pick.ChoiceTeam()
		if err != nil {
			return "Pick on record"
		}
		return "🏆 " + team
	case api.SideBetTopScorer, api.SideBetTopAssister:
		choice, err := pick.ChoiceTeamPlayer()
		if err != nil {
			return "Pick on record"
		}
		return fmt.Sprintf("%s (%s)", choice.Player, choice.Team)
	case api.SideBetQualifiers:
		slots, err := pick.ChoiceSlots()
		if err != nil {
			return "Pick on record"
		}
		return fmt.Sprintf("%d/%d teams placed", len(slots), common.QualifierSlots)
	}
	return "Pick on record"
}

func lockSuffix(sb *api.SideBet) string {
	if sb.Editable() {
		return ""
	}
	return " 🔒"
}

func typeEmoji(sideBetType string) string {
	switch sideBetType {
	case api.SideBetChampion:
		return "🏆"
	case api.SideBetTopScorer:
		return "⚽"
	case api.SideBetTopAssister:
		return "🅰️"
	case api.SideBetQualifiers:
		return "🎫"
	}
	return "🎯"
}
