package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/rizalfahlevi/intern-outreach/internal/model"
)

type emailTemplate struct {
	Subject string
	Body    string
}

// Template sets keyed by urgency, then stage. Initial bodies embed the
// candidate summaries; follow-up and final reference the earlier pitch
// without re-listing candidates.
var normalTemplates = map[string]emailTemplate{
	model.StageInitial: {
		Subject: "Intern candidates for your %s role",
		Body: `<p>Hi %s team,</p>
<p>We have matched the following candidates to your <b>%s</b> role and believe they would be a strong fit:</p>
%s
<p>Resumes are attached. Would you be open to a short call this week to discuss next steps?</p>
<p>Best regards,<br>%s</p>`,
	},
	model.StageFollowUp: {
		Subject: "Following up: intern candidates for %s",
		Body: `<p>Hi %s team,</p>
<p>Just checking in on the candidates we sent over for your <b>%s</b> role. They remain available and keen to move forward.</p>
<p>Happy to answer any questions or arrange interviews at a time that suits you.</p>
<p>Best regards,<br>%s</p>`,
	},
	model.StageFinal: {
		Subject: "Final note: intern candidates for %s",
		Body: `<p>Hi %s team,</p>
<p>This is a final note regarding the candidates we proposed for your <b>%s</b> role. If we do not hear back, we will move them towards other opportunities shortly.</p>
<p>If the timing is simply off, let us know and we will circle back later.</p>
<p>Best regards,<br>%s</p>`,
	},
}

var urgentTemplates = map[string]emailTemplate{
	model.StageInitial: {
		Subject: "Time-sensitive: intern candidates available now for %s",
		Body: `<p>Hi %s team,</p>
<p>The following candidates matched to your <b>%s</b> role have near-term start dates and are ready to begin immediately:</p>
%s
<p>Given their availability windows, a quick decision would secure them. Resumes attached; could we schedule a call in the next day or two?</p>
<p>Best regards,<br>%s</p>`,
	},
	model.StageFollowUp: {
		Subject: "Quick follow-up: candidates still available for %s",
		Body: `<p>Hi %s team,</p>
<p>A quick follow-up on the time-sensitive candidates for your <b>%s</b> role. Their availability is closing soon but they are still interested.</p>
<p>Can we lock in a short call?</p>
<p>Best regards,<br>%s</p>`,
	},
	model.StageFinal: {
		Subject: "Last chance: candidates for %s moving on soon",
		Body: `<p>Hi %s team,</p>
<p>The candidates we proposed for your <b>%s</b> role will be placed elsewhere very soon. This is our last note before we move them on.</p>
<p>Reply any time today or tomorrow and we can still make it work.</p>
<p>Best regards,<br>%s</p>`,
	},
}

func templateFor(urgent bool, stage string) emailTemplate {
	set := normalTemplates
	if urgent {
		set = urgentTemplates
	}
	if t, ok := set[stage]; ok {
		return t
	}
	return set[model.StageInitial]
}

func renderSubject(urgent bool, stage, roleTitle string) string {
	return fmt.Sprintf(templateFor(urgent, stage).Subject, roleTitle)
}

func renderBody(urgent bool, stage, companyName, roleTitle, senderName string, candidates []model.Candidate) string {
	t := templateFor(urgent, stage)
	if stage == model.StageInitial {
		return fmt.Sprintf(t.Body, companyName, roleTitle, candidateSummaries(candidates), senderName)
	}
	return fmt.Sprintf(t.Body, companyName, roleTitle, senderName)
}

func candidateSummaries(candidates []model.Candidate) string {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, c := range candidates {
		b.WriteString("<li><b>" + c.Name + "</b>")
		if window := availabilityWindow(c); window != "" {
			b.WriteString(", available " + window)
		}
		if c.Bio != "" {
			b.WriteString("<br>" + c.Bio)
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>")
	return b.String()
}

func availabilityWindow(c model.Candidate) string {
	const layout = "2 Jan 2006"
	switch {
	case c.StartDate != nil && c.EndDate != nil:
		return c.StartDate.Format(layout) + " to " + c.EndDate.Format(layout)
	case c.StartDate != nil:
		return "from " + c.StartDate.Format(layout)
	default:
		return ""
	}
}

func daysUntil(t *time.Time, from time.Time) int {
	if t == nil {
		return 0
	}
	return int(t.Sub(from).Hours() / 24)
}
