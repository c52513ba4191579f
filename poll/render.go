// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// PromptText renders the canonical poll description: title, id, body,
// and the option list (or setup instructions while it is still empty).
func (p *Poll) PromptText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "__**%s**__ - id: `%s`\n", p.title, p.ID)
	b.WriteString(p.body)
	b.WriteString("\n\n__**POLL OPTIONS**__\n")
	if len(p.options) == 0 {
		fmt.Fprintf(&b, "use the command `%soption %s :thumbsup: This means you are voting 'yes'` to set up some poll options with descriptions\n", p.prefix, p.ID)
		b.WriteString("you can specify either an emoji `:emoji:` or any single word as the voting command")
		return b.String()
	}
	for _, opt := range p.options {
		fmt.Fprintf(&b, "\n`  %svote %s  ` -> %s\n", p.prefix, opt.Token, opt.Body)
	}
	return b.String()
}

// ResultsText renders the full results view: prompt recap, totals, the
// ranked option list with winners marked, and a per-option breakdown
// with supporter display names.
func (p *Poll) ResultsText() string {
	snap := p.Snapshot()
	ranked := snap.Ranked(p.options)

	var b strings.Builder
	fmt.Fprintf(&b, "__**%s - Results**__\n", p.title)
	b.WriteString("Prompt:\n\n")
	fmt.Fprintf(&b, "\t %s\n\n", p.body)
	if !p.startedAt.IsZero() {
		fmt.Fprintf(&b, "Poll opened %s\n", humanize.Time(p.startedAt))
	}
	fmt.Fprintf(&b, "Total Votes: %d\n", snap.TotalVotes)
	if snap.TotalVotes == 0 {
		b.WriteString("No votes yet\n")
	}

	for _, opt := range ranked {
		line := fmt.Sprintf("%s \t- %d (%s)", opt.Token, snap.Counts[opt.Token], snap.Percent(opt.Token))
		if snap.Winning(opt.Token) {
			line = "**" + line + " (Winning)**"
		}
		b.WriteString("\n" + line)
	}

	b.WriteString("\n\n**Detailed Breakdown**\n")
	for _, opt := range ranked {
		fmt.Fprintf(&b, "`%s -> %s`\n", opt.Token, opt.Body)
		fmt.Fprintf(&b, " - Votes: %d (%s)\n", snap.Counts[opt.Token], snap.Percent(opt.Token))
		if supporters := snap.Supporters[opt.Token]; len(supporters) > 0 {
			names := make([]string, len(supporters))
			for i, id := range supporters {
				names[i] = p.dir.DisplayName(p.GuildID, id)
			}
			fmt.Fprintf(&b, " - Supporters: \n```%s```\n", strings.Join(names, " "))
		}
	}
	return b.String()
}

// managementFooter is the self-destructing how-to posted under every
// new poll preview.
func managementFooter(prefix string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("----------------------------------------\n")
	b.WriteString("The above is a preview of your poll based on the data I have now.\n")
	fmt.Fprintf(&b, "To change the Title, use the command `%stitle My Snazzy New Title`\n", prefix)
	b.WriteString("The Preview above should automatically update with your changes\n")
	fmt.Fprintf(&b, "A full list of commands can be found with the `%shelp` command\n", prefix)
	b.WriteString("This message will self destruct in 20 seconds!")
	return b.String()
}

// votingInstructions are posted into a freshly opened voting channel,
// after the prompt.
func votingInstructions(prefix string) []string {
	return []string{
		fmt.Sprintf("Please indicate your preference by entering `%svote :vote-emoji:` corresponding to the options above (copy/paste for accuracy)", prefix),
		fmt.Sprintf("`%swithdraw` to cancel your vote", prefix),
	}
}

// HelpText renders the command reference.
func HelpText(prefix string) string {
	var b strings.Builder
	b.WriteString("__**Poll Commands**__ (poll-manager role, in the management channel)\n")
	fmt.Fprintf(&b, "`%screate` - start drafting a new poll\n", prefix)
	fmt.Fprintf(&b, "`%stitle <text>` - set the title of the oldest draft\n", prefix)
	fmt.Fprintf(&b, "`%sbody <text>` - set the description of the oldest draft\n", prefix)
	fmt.Fprintf(&b, "`%soption [pollId] <token> [description...]` - add or replace an option; omit the description to remove it\n", prefix)
	fmt.Fprintf(&b, "`%sstart [pollId]` - open the poll for voting in a dedicated channel\n", prefix)
	fmt.Fprintf(&b, "`%send [pollId]` - close voting and publish the final tally\n", prefix)
	fmt.Fprintf(&b, "`%sdelete <pollId>` - remove a poll and all of its messages\n", prefix)
	fmt.Fprintf(&b, "`%sresetall` - remove every poll in this server\n", prefix)
	b.WriteString("\n__**Voting Commands**__ (inside a voting channel)\n")
	fmt.Fprintf(&b, "`%svote <token>` - cast or change your vote\n", prefix)
	fmt.Fprintf(&b, "`%swithdraw` - remove your vote\n", prefix)
	return b.String()
}
