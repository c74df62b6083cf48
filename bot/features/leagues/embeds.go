package leagues

import (
	"fmt"
	"strconv"
	"strings"

	"betleague/api"
	"betleague/bot/common"

	"github.com/bwmarrin/discordgo"
)

// renderBrowse builds the league overview: the user's leagues, then the
// public ones, with a select to open any of them
func renderBrowse(public, mine []api.League, search string, publicErr, mineErr error) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Betting Leagues",
		Color: common.ColorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Open a league below, or use /leagues create and /leagues join-private",
		},
	}
	if search != "" {
		embed.Description = fmt.Sprintf("Public leagues matching **%s**", search)
	}

	memberOf := make(map[int64]bool, len(mine))
	for _, league := range mine {
		memberOf[league.ID] = true
	}

	mineValue := "Currently unavailable"
	if mineErr == nil {
		var lines []string
		for _, league := range mine {
			lines = append(lines, fmt.Sprintf("**%s** · %s", league.Name, visibilityLabel(&league)))
		}
		mineValue = strings.Join(lines, "\n")
		if mineValue == "" {
			mineValue = "You are not in any league yet."
		}
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Your leagues",
		Value: mineValue,
	})

	publicValue := "Currently unavailable"
	if publicErr == nil {
		var lines []string
		for _, league := range public {
			badge := ""
			if memberOf[league.ID] {
				badge = " · ✅ member"
			}
			lines = append(lines, fmt.Sprintf("**%s** · %s member(s)%s",
				league.Name, memberCount(&league), badge))
		}
		publicValue = strings.Join(lines, "\n")
		if publicValue == "" {
			if search != "" {
				publicValue = "No public league matches that search."
			} else {
				publicValue = "No public leagues yet. Found one with `/leagues create`!"
			}
		}
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Public leagues",
		Value: publicValue,
	})

	var options []discordgo.SelectMenuOption
	seen := make(map[int64]bool)
	for _, league := range append(append([]api.League{}, mine...), public...) {
		if seen[league.ID] || len(options) == common.MaxSelectOptions {
			continue
		}
		seen[league.ID] = true
		options = append(options, discordgo.SelectMenuOption{
			Label:       common.Truncate(league.Name, 100),
			Value:       strconv.FormatInt(league.ID, 10),
			Description: common.Truncate(league.Description, 100),
		})
	}

	var components []discordgo.MessageComponent
	if len(options) > 0 {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    "league_open",
					Placeholder: "Open a league",
					Options:     options,
				},
			},
		})
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		Flags:      discordgo.MessageFlagsEphemeral,
	}
}

// renderLanding builds one league's landing view with the actions the user
// may take there
func renderLanding(league *api.League, userID int64) *discordgo.InteractionResponseData {
	isMember := false
	for _, member := range league.Members {
		if member.ID == userID {
			isMember = true
			break
		}
	}
	isManager := league.ManagerID == userID

	description := league.Description
	if description == "" {
		description = "No description."
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 " + league.Name,
		Description: description,
		Color:       common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Visibility",
				Value:  visibilityLabel(league),
				Inline: true,
			},
			{
				Name:   "Members",
				Value:  memberCount(league),
				Inline: true,
			},
		},
	}

	if len(league.Members) > 0 {
		var names []string
		for _, member := range league.Members {
			names = append(names, member.Username)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Member list",
			Value: common.Truncate(strings.Join(names, ", "), 1024),
		})
	}

	// The invite code is only shown to members of a private league
	if !league.Public && isMember && league.Code != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Invite code",
			Value: fmt.Sprintf("`%s`", league.Code),
		})
	}

	buttons := []discordgo.MessageComponent{}
	if isMember {
		buttons = append(buttons,
			discordgo.Button{
				Label:    "Leaderboard",
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("league_board_%d", league.ID),
			},
			discordgo.Button{
				Label:    "Chat",
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("chat_view_%d", league.ID),
			},
		)
		if !isManager {
			buttons = append(buttons, discordgo.Button{
				Label:    "Leave",
				Style:    discordgo.DangerButton,
				CustomID: fmt.Sprintf("league_leave_%d", league.ID),
			})
		}
	} else if league.Public {
		buttons = append(buttons, discordgo.Button{
			Label:    "Join",
			Style:    discordgo.SuccessButton,
			CustomID: fmt.Sprintf("league_join_%d", league.ID),
		})
	}
	if isManager {
		buttons = append(buttons, discordgo.Button{
			Label:    "Delete league",
			Style:    discordgo.DangerButton,
			CustomID: fmt.Sprintf("league_delete_%d", league.ID),
		})
	}
	buttons = append(buttons, discordgo.Button{
		Label:    "Back",
		Style:    discordgo.SecondaryButton,
		CustomID: "league_back",
	})

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
	if kick := buildKickSelect(league, isManager); kick != nil {
		components = append(components, *kick)
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		Flags:      discordgo.MessageFlagsEphemeral,
	}
}

// buildKickSelect gives the manager a select to remove a member. The manager
// themselves is not listed.
func buildKickSelect(league *api.League, isManager bool) *discordgo.ActionsRow {
	if !isManager {
		return nil
	}

	var options []discordgo.SelectMenuOption
	for _, member := range league.Members {
		if member.ID == league.ManagerID || len(options) == common.MaxSelectOptions {
			continue
		}
		options = append(options, discordgo.SelectMenuOption{
			Label: common.Truncate(member.Username, 100),
			Value: strconv.FormatInt(member.ID, 10),
		})
	}
	if len(options) == 0 {
		return nil
	}

	return &discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    fmt.Sprintf("league_kick_%d", league.ID),
				Placeholder: "Remove a member",
				Options:     options,
			},
		},
	}
}

// renderLeaderboard builds a league's standings view
func renderLeaderboard(league *api.League, entries []api.LeaderboardEntry) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 %s · Leaderboard", league.Name),
		Color: common.ColorInfo,
	}

	if len(entries) == 0 {
		embed.Description = "Nobody has scored yet."
	} else {
		var lines []string
		medals := []string{"🥇", "🥈", "🥉"}
		for idx, entry := range entries {
			rank := fmt.Sprintf("%d.", idx+1)
			if idx < len(medals) {
				rank = medals[idx]
			}
			lines = append(lines, fmt.Sprintf("%s **%s** · %s points",
				rank, entry.Username, common.FormatPoints(entry.Points)))
		}
		embed.Description = strings.Join(lines, "\n")
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Back",
						Style:    discordgo.SecondaryButton,
						CustomID: fmt.Sprintf("league_open_%d", league.ID),
					},
				},
			},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

// renderChat builds the chat view: the most recent messages with their IDs
// so they can be edited or deleted by ID
func renderChat(leagueID int64, messages []api.ChatMessage) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: "💬 League Chat",
		Color: common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Edit and delete use the [id] shown next to each message",
		},
	}

	if len(messages) == 0 {
		embed.Description = "No messages yet. Say hello!"
	} else {
		start := 0
		if len(messages) > chatMessagesShown {
			start = len(messages) - chatMessagesShown
		}
		var lines []string
		for _, msg := range messages[start:] {
			lines = append(lines, fmt.Sprintf("`[%d]` **%s** %s: %s",
				msg.ID,
				msg.Username,
				common.FormatDiscordTimestamp(msg.Timestamp.Time, "R"),
				common.Truncate(msg.Content, 120),
			))
		}
		embed.Description = strings.Join(lines, "\n")
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Post",
						Style:    discordgo.SuccessButton,
						CustomID: fmt.Sprintf("chat_post_%d", leagueID),
					},
					discordgo.Button{
						Label:    "Edit",
						Style:    discordgo.SecondaryButton,
						CustomID: fmt.Sprintf("chat_edit_%d", leagueID),
					},
					discordgo.Button{
						Label:    "Delete",
						Style:    discordgo.DangerButton,
						CustomID: fmt.Sprintf("chat_del_%d", leagueID),
					},
					discordgo.Button{
						Label:    "Refresh",
						Style:    discordgo.SecondaryButton,
						CustomID: fmt.Sprintf("chat_view_%d", leagueID),
					},
					discordgo.Button{
						Label:    "Back",
						Style:    discordgo.SecondaryButton,
						CustomID: fmt.Sprintf("league_open_%d", leagueID),
					},
				},
			},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

func visibilityLabel(league *api.League) string {
	if league.Public {
		return "🌍 public"
	}
	return "🔒 private"
}

func memberCount(league *api.League) string {
	if league.NumMembers != nil {
		return strconv.Itoa(*league.NumMembers)
	}
	return strconv.Itoa(len(league.Members))
}
