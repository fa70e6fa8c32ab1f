// Command staticlint запускает набор анализаторов для проекта
//
// Состав:
//   - стандартные проходы golang.org/x/tools/go/analysis/passes
//   - все анализаторы класса SA из staticcheck и выбранные из simple и stylecheck
//   - bodyclose: незакрытые тела HTTP ответов
//   - nilerr: возврат nil при ненулевой ошибке
//
// Запуск: go run ./cmd/staticlint ./...
package main

import (
	"strings"

	"github.com/gostaticanalysis/nilerr"
	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"
)

// extraChecks анализаторы вне класса SA
var extraChecks = map[string]bool{
	"S1000":  true,
	"S1005":  true,
	"ST1005": true,
	"ST1008": true,
}

func main() {
	analyzers := []*analysis.Analyzer{
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		copylock.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		printf.Analyzer,
		shift.Analyzer,
		stdmethods.Analyzer,
		structtag.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unusedresult.Analyzer,

		bodyclose.Analyzer,
		nilerr.Analyzer,
	}

	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") {
			analyzers = append(analyzers, a.Analyzer)
		}
	}
	for _, a := range simple.Analyzers {
		if extraChecks[a.Analyzer.Name] {
			analyzers = append(analyzers, a.Analyzer)
		}
	}
	for _, a := range stylecheck.Analyzers {
		if extraChecks[a.Analyzer.Name] {
			analyzers = append(analyzers, a.Analyzer)
		}
	}

	multichecker.Main(analyzers...)
}
