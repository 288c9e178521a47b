package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/renderguard/renderguard/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A": success,
		"B": lipgloss.Color("#A3E635"), // lime
		"C": warning,
		"D": lipgloss.Color("#FB923C"), // orange
		"F": danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	criticalStyle = lipgloss.NewStyle().Foreground(danger).Bold(true).Underline(true)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	stageStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderResult formats a pipeline report for terminal output.
func RenderResult(res *domain.PipelineResult) string {
	var b strings.Builder

	// ── Header ──
	grade := domain.Grade(res.QualityScore)
	title := headerStyle.Render("renderguard")
	subtitle := dimStyle.Render("Component Quality Report")
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%d / 100", res.QualityScore))
	gradeStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(grade)

	verdict := failStyle.Render("NEEDS WORK")
	if res.Success {
		verdict = passStyle.Render("PASSED")
	}

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + gradeStyled + "\n" + verdict))
	b.WriteString("\n\n")

	// ── Stages ──
	renderStages(&b, res)

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Fixes ──
	if len(res.AllFixesApplied) > 0 {
		b.WriteString("  " + titleStyle.Render("Fixes Applied") + "\n\n")
		for _, fix := range res.AllFixesApplied {
			fmt.Fprintf(&b, "    %s %s  %s\n",
				passStyle.Render("✓"),
				dimStyle.Render(fix.Description),
				faintStyle.Render(fmt.Sprintf("confidence %.2f", fix.Confidence)),
			)
		}
		b.WriteString("\n")
	}

	// ── Issues ──
	renderIssues(&b, res.AllIssues)

	// ── Footer ──
	fmt.Fprintf(&b, "\n  %s\n",
		dimStyle.Render(fmt.Sprintf("%d iteration(s) · %d blocking issue(s) resolved",
			res.IterationsUsed, res.IssuesReduced)))

	return b.String()
}

func renderStages(b *strings.Builder, res *domain.PipelineResult) {
	passed := make(map[domain.Stage]bool, len(res.StagesPassed))
	for _, s := range res.StagesPassed {
		passed[s] = true
	}

	ran := make(map[domain.Stage]bool)
	for _, sr := range lastIterationStages(res) {
		ran[sr.Stage] = true
	}

	b.WriteString("  " + titleStyle.Render("Stages") + "\n\n")
	for _, stage := range domain.StageOrder {
		name := stageStyle.Render(padRight(string(stage), 24))
		switch {
		case passed[stage]:
			fmt.Fprintf(b, "    %s %s %s\n", passStyle.Render("●"), name, passStyle.Render("passed"))
		case ran[stage]:
			fmt.Fprintf(b, "    %s %s %s\n", failStyle.Render("●"), name, failStyle.Render("failed"))
		default:
			fmt.Fprintf(b, "    %s %s %s\n", skipStyle.Render("○"), name, skipStyle.Render("skipped"))
		}
	}
}

func lastIterationStages(res *domain.PipelineResult) []domain.StageResult {
	if len(res.Iterations) == 0 {
		return nil
	}
	return res.Iterations[len(res.Iterations)-1].Stages
}

func renderIssues(b *strings.Builder, issues []domain.Issue) {
	if len(issues) == 0 {
		b.WriteString("  " + passStyle.Render("No issues remaining.") + "\n")
		return
	}

	criticals, errors, warnings, infos := countSeverities(issues)
	b.WriteString("  " + titleStyle.Render("Issues") + "  ")
	if criticals > 0 {
		b.WriteString(criticalStyle.Render(fmt.Sprintf("%d critical", criticals)) + "  ")
	}
	if errors > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", errors)) + "  ")
	}
	if warnings > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warnings)) + "  ")
	}
	if infos > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", infos)))
	}
	b.WriteString("\n\n")

	// Sort a copy: the result the caller handed us is immutable.
	sorted := make([]domain.Issue, len(issues))
	copy(sorted, issues)
	sortBySeverity(sorted)
	for _, issue := range sorted {
		renderIssue(b, issue)
	}
}

func renderIssue(b *strings.Builder, issue domain.Issue) {
	tag := severityTag(issue.Severity)
	loc := ""
	if issue.Line > 0 {
		loc = faintStyle.Render(fmt.Sprintf("L%d", issue.Line)) + " "
	}

	fmt.Fprintf(b, "    %s %s%s %s\n", tag, loc,
		infoTagStyle.Render(issue.Category), dimStyle.Render(issue.Message))
	if issue.Suggestion != "" {
		fmt.Fprintf(b, "          %s\n", faintStyle.Render("→ "+issue.Suggestion))
	}
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityCritical:
		return criticalStyle.Render("crit ")
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func countSeverities(issues []domain.Issue) (criticals, errors, warnings, infos int) {
	for _, i := range issues {
		switch i.Severity {
		case domain.SeverityCritical:
			criticals++
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		default:
			infos++
		}
	}
	return
}

func sortBySeverity(issues []domain.Issue) {
	order := map[string]int{
		domain.SeverityCritical: 0,
		domain.SeverityError:    1,
		domain.SeverityWarning:  2,
		domain.SeverityInfo:     3,
	}
	for i := 1; i < len(issues); i++ {
		for j := i; j > 0 && order[issues[j].Severity] < order[issues[j-1].Severity]; j-- {
			issues[j], issues[j-1] = issues[j-1], issues[j]
		}
	}
}

// RenderIterations formats the per-iteration convergence trail.
func RenderIterations(iterations []domain.IterationResult) string {
	if len(iterations) == 0 {
		return "  " + dimStyle.Render("No iterations recorded.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Convergence") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, it := range iterations {
		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(it.Score)).
			Render(fmt.Sprintf("%d/100", it.Score))

		line := fmt.Sprintf("  %s  %s  %s",
			dimStyle.Render(fmt.Sprintf("iteration %d", it.Iteration)),
			scoreStyled,
			faintStyle.Render(fmt.Sprintf("%d blocking", it.BlockingCount)),
		)

		if i > 0 {
			diff := it.Score - iterations[i-1].Score
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return fg
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
