package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/comicweb/pkg/edges"
	"github.com/matzehuels/comicweb/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command, which builds the network of a
// table and browses it interactively.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "explore <table.csv|table.json>",
		Short: "Browse a character network interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			opts.Logger = c.Logger

			tbl, _, err := importTable(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags.noCache, cfg.Cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Execute(ctx, tbl, opts)
			if err != nil {
				return err
			}
			if res.Graph.NodeCount() == 0 {
				printWarning("No edges selected; nothing to explore")
				return nil
			}

			_, err = tea.NewProgram(NewNetworkModel(res.Graph), tea.WithContext(ctx)).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// NetworkModel - Interactive character browser
// =============================================================================

// NetworkModel is the bubbletea model for browsing a character network.
// Characters are listed by degree; the panel beside the list shows the
// neighbors of the character under the cursor.
type NetworkModel struct {
	Graph  *graph.Graph
	Names  []string
	Cursor int
	Height int
	Offset int
}

// NewNetworkModel creates a model listing the nodes of g by descending
// degree, then strength, then name.
func NewNetworkModel(g *graph.Graph) NetworkModel {
	names := make([]string, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		names = append(names, n.ID)
	}
	sort.SliceStable(names, func(i, j int) bool {
		a, b := names[i], names[j]
		if da, db := g.Degree(a), g.Degree(b); da != db {
			return da > db
		}
		if sa, sb := g.Strength(a), g.Strength(b); sa != sb {
			return sa > sb
		}
		return a < b
	})
	return NetworkModel{Graph: g, Names: names, Height: 15}
}

func (m NetworkModel) Init() tea.Cmd {
	return nil
}

func (m NetworkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Names)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Names)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

// Current returns the character under the cursor.
func (m NetworkModel) Current() string {
	if len(m.Names) == 0 {
		return ""
	}
	return m.Names[m.Cursor]
}

func (m NetworkModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Character Network"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Names))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		name := m.Names[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			name,
			fmt.Sprint(m.Graph.Degree(name)),
			fmt.Sprintf("%.2f", m.Graph.Strength(name)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	list := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Character", "Degree", "Strength").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.Render(), "  ", m.neighborPanel()))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Names))))

	return b.String()
}

// neighborPanel lists the edges of the current character, strongest first.
func (m NetworkModel) neighborPanel() string {
	name := m.Current()
	if name == "" {
		return ""
	}
	var links edges.List
	for _, e := range m.Graph.EdgeList() {
		switch name {
		case e.Source:
			links = append(links, e)
		case e.Target:
			links = append(links, e.Reverse())
		}
	}
	links = links.SortByWeight()

	var b strings.Builder
	b.WriteString(StyleTitle.Render(name))
	b.WriteString("\n")
	for i, l := range links {
		if i == m.Height {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("and %d more", len(links)-i)))
			break
		}
		b.WriteString(fmt.Sprintf("%s %s\n", StyleNumber.Render(fmt.Sprintf("%6.3f", l.Weight)), listNormalStyle.Render(l.Target)))
	}
	return lipgloss.NewStyle().Padding(1, 0).Render(b.String())
}
