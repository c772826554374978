// Package console implementa o types.ConsoleInterface sobre o pterm: mensagens de log,
// spinner de carregamento, barra de progresso da exportação e tabelas de pré-visualização.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/diillson/erp-reports/internal/shared/types"
	"github.com/pterm/pterm"
)

// Console escreve texto livre em out; logs, spinner e barra usam as impressoras do pterm.
type Console struct {
	out io.Writer
}

// NewConsole cria um Console ligado ao stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

func (c *Console) Print(a ...interface{})                 { fmt.Fprint(c.out, a...) }
func (c *Console) Printf(format string, a ...interface{}) { fmt.Fprintf(c.out, format, a...) }
func (c *Console) Println(a ...interface{})               { fmt.Fprintln(c.out, a...) }

func (c *Console) LogInfo(format string, a ...interface{})    { pterm.Info.Printfln(format, a...) }
func (c *Console) LogWarning(format string, a ...interface{}) { pterm.Warning.Printfln(format, a...) }
func (c *Console) LogError(format string, a ...interface{})   { pterm.Error.Printfln(format, a...) }
func (c *Console) LogSuccess(format string, a ...interface{}) { pterm.Success.Printfln(format, a...) }

// spinnerStatus shows the row-loading spinner.
type spinnerStatus struct {
	spinner *pterm.SpinnerPrinter
}

// Status inicia um spinner; se o terminal não o suportar, Update e Stop não fazem nada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &spinnerStatus{spinner: spinner}
}

func (s *spinnerStatus) Update(message string) {
	if s.spinner != nil {
		s.spinner.UpdateText(message)
	}
}

func (s *spinnerStatus) Stop() {
	if s.spinner != nil {
		_ = s.spinner.Stop()
	}
}

// exportProgress advances once per requested format.
type exportProgress struct {
	bar *pterm.ProgressbarPrinter
}

// ProgressWithTotal inicia a barra "Exporting report" com total passos.
func (c *Console) ProgressWithTotal(total int) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Exporting report").
		WithShowElapsedTime(true).
		WithShowCount(true).
		WithRemoveWhenDone(false).
		Start()
	return &exportProgress{bar: bar}
}

func (p *exportProgress) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

func (p *exportProgress) Stop() {
	if p.bar != nil {
		_, _ = p.bar.Stop()
	}
}

// Table accumulates a report preview or the report listing before rendering it boxed.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable devolve uma tabela vazia.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{}
}

// AddColumn ignores options; pterm tables have no per-column settings.
func (t *Table) AddColumn(name string, _ ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow stores the cells as text. Short rows are padded to the column count; nil cells stay blank.
func (t *Table) AddRow(cells ...interface{}) {
	row := make([]string, max(len(t.columns), len(cells)))
	for i, cell := range cells {
		if cell != nil {
			row[i] = fmt.Sprint(cell)
		}
	}
	t.rows = append(t.rows, row)
}

// Render returns the boxed table with a cyan header line.
func (t *Table) Render() string {
	data := append(pterm.TableData{t.columns}, t.rows...)

	rendered, _ := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	return rendered
}
