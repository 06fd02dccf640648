package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xenking/product-drawer/internal/screen"
)

var inputLabels = [inputCount]string{"Name", "Price", "Offered Price", "Image"}

// View renders the screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Products"))
	if m.loading {
		b.WriteString(dimStyle.Render(" loading…"))
	}
	b.WriteString("\n\n")

	switch {
	case m.alert != "":
		b.WriteString(alertStyle.Render("! "+m.alert) + "\n")
		b.WriteString(helpStyle.Render("[enter] OK") + "\n\n")
	case m.confirm != nil:
		b.WriteString(confirmStyle.Render(m.confirm.title) + "\n")
		b.WriteString(helpStyle.Render("[y] Yes  [n] No") + "\n\n")
	}

	if m.view.ModalVisible {
		b.WriteString(m.modalView())
		b.WriteString("\n")
		return b.String()
	}

	if m.failed {
		b.WriteString(alertStyle.Render("Products could not be loaded.") + "\n")
	}
	cards := screen.Cards(m.products)
	if len(cards) == 0 && !m.loading {
		b.WriteString(dimStyle.Render("  No products yet.") + "\n")
	}
	for i, c := range cards {
		b.WriteString(m.cardView(c, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[a] Add New  [e] Edit  [d] Delete  [r] Refresh  [↑/↓] Move  [q] Quit"))
	return b.String()
}

func (m Model) cardView(c screen.Card, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	if m.width > 8 {
		style = style.Width(m.width - 8)
	}

	prices := lipgloss.JoinHorizontal(lipgloss.Top,
		listPriceStyle.Render(c.ListPrice),
		offeredStyle.Render(c.OfferedPrice),
	)
	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(c.Title),
		dimStyle.Render(c.ImageURL),
		prices,
		dimStyle.Render(strings.Join(c.Actions, " · ")),
	))
}

func (m Model) modalView() string {
	title := "Add New Product"
	if m.view.Editing {
		title = "Edit Product"
	}

	rows := []string{titleStyle.Render(title), ""}
	for i, in := range m.inputs {
		rows = append(rows, dimStyle.Render(inputLabels[i]), in.View())
	}
	if m.view.Editing && m.view.Draft.ImageURL != "" {
		rows = append(rows, dimStyle.Render("Current image: "+m.view.Draft.ImageURL))
	}
	rows = append(rows, "")
	if m.view.Uploading {
		rows = append(rows, m.spinner.View()+" Uploading image…")
	} else {
		rows = append(rows, helpStyle.Render("[enter] Submit  [tab] Next field  [esc] Cancel"))
	}
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
