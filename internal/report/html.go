// Package report renders the deliverables of a verification run: the HTML
// conference report, per-source XLSX exports, and timestamped PDF backups.
package report

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/rfsc/georef-verifier/internal/reconcile"
)

// reportHTML lays the comparison out as stacked record blocks: one block per
// vertex or segment, one row per column, with the record number spanning the
// block. Registry staff read this file directly, so labels stay in Portuguese.
const reportHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Relatório de Conferência INCRA</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: 'Segoe UI', Arial, sans-serif;
            background: #f5f5f5;
            padding: 20px;
        }
        .container {
            max-width: 1400px;
            margin: 0 auto;
            background: white;
            padding: 40px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            border: 1px solid #e0e0e0;
        }
        h1 {
            color: #1a1a1a;
            text-align: center;
            margin-bottom: 10px;
            font-size: 28px;
            font-weight: 600;
        }
        .subtitle {
            text-align: center;
            color: #666;
            margin-bottom: 30px;
            font-size: 14px;
        }
        .info-box {
            background: #f8f9fa;
            padding: 15px 20px;
            border-radius: 6px;
            margin-bottom: 30px;
            border-left: 4px solid #2c5282;
        }
        .info-box strong {
            color: #1a1a1a;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
            border: 1px solid #e0e0e0;
        }
        th {
            background: #2c5282;
            color: white;
            padding: 14px 15px;
            text-align: left;
            font-weight: 600;
            font-size: 13px;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }
        td {
            padding: 12px 15px;
            border-bottom: 1px solid #e8e8e8;
            font-size: 13px;
            color: #333;
        }
        tr:hover {
            background-color: #f8f9fa;
        }
        .identico {
            background-color: #e8f5e9 !important;
            border-left: 4px solid #2e7d32;
        }
        .diferente {
            background-color: #ffebee !important;
            border-left: 4px solid #c62828;
            font-weight: 600;
        }
        .resumo {
            background: #2c5282;
            color: white;
            padding: 25px 30px;
            border-radius: 6px;
            margin-top: 30px;
        }
        .resumo h2 {
            margin-bottom: 20px;
            font-size: 22px;
            font-weight: 600;
        }
        .resumo h4 {
            margin-top: 18px;
            margin-bottom: 10px;
            font-size: 16px;
            font-weight: 600;
            border-bottom: 1px solid rgba(255,255,255,0.3);
            padding-bottom: 8px;
        }
        .resumo p {
            margin: 8px 0;
            font-size: 15px;
        }
        .section-title {
            color: #1a1a1a;
            margin: 40px 0 20px 0;
            padding-bottom: 10px;
            border-bottom: 3px solid #2c5282;
            font-size: 22px;
            font-weight: 600;
        }
        .rodape {
            text-align: center;
            margin-top: 40px;
            padding-top: 20px;
            border-top: 2px solid #e0e0e0;
            color: #888;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>📋 RELATÓRIO DE CONFERÊNCIA INCRA</h1>
        <p class="subtitle">Sistema Profissional de Análise e Verificação v4.0</p>

        <div class="info-box">
            <p><strong>📅 Data:</strong> {{.GeneratedAt}}</p>
            <p><strong>📋 Nº Prenotação:</strong> {{.Registration}}</p>
        </div>
{{template "section" .Vertices}}
{{template "section" .Segments}}
        <div class="resumo">
            <h2>📊 RESUMO DA COMPARAÇÃO</h2>

            <h4>📍 VÉRTICES:</h4>
            <p>✅ Campos idênticos: <strong>{{.Vertices.Identical}}</strong></p>
            <p>❌ Campos diferentes: <strong>{{.Vertices.Different}}</strong></p>
            <p>⚠️ Vértices com diferenças: <strong>{{.Vertices.DiffList}}</strong></p>

            <h4>🔄 SEGMENTOS VANTE:</h4>
            <p>✅ Campos idênticos: <strong>{{.Segments.Identical}}</strong></p>
            <p>❌ Campos diferentes: <strong>{{.Segments.Different}}</strong></p>
            <p>⚠️ Segmentos com diferenças: <strong>{{.Segments.DiffList}}</strong></p>

            <h4>🎯 TOTAL GERAL:</h4>
            <p>✅ Total de campos idênticos: <strong>{{.TotalIdentical}}</strong></p>
            <p>❌ Total de campos diferentes: <strong>{{.TotalDifferent}}</strong></p>
            <p>📋 Total de vértices analisados: <strong>{{.RecordCount}}</strong></p>
        </div>
        <div class="rodape">
            <p>Relatório gerado automaticamente pelo Sistema de Verificação INCRA v4.0</p>
        </div>
    </div>
</body>
</html>
{{define "section"}}
        <h2 class="section-title">{{.Title}}</h2>
        <p style="color: #666; margin-bottom: 20px;">{{.Caption}}</p>
        <table>
        <thead><tr>
        <th style="width: 80px;">{{.Unit}}</th>
        <th style="width: 150px;">Coluna</th>
        <th style="width: 35%;">{{.LeftLabel}}</th>
        <th style="width: 35%;">{{.RightLabel}}</th>
        <th style="width: 120px;">Status</th>
        </tr></thead><tbody>
{{- range $ri, $rec := .Records}}
{{- if gt $ri 0}}
        <tr style="height: 3px; background: #2c5282;"><td colspan="5"></td></tr>
{{- end}}
{{- range $fi, $f := $rec.Fields}}
        <tr class="{{if $f.Identical}}identico{{else}}diferente{{end}}">
{{- if eq $fi 0}}
            <td rowspan="{{$.Rowspan}}" style="text-align: center; font-size: 18px; font-weight: bold; background: #f0f0f0; border-right: 3px solid #2c5282;">#{{$rec.Number}}</td>
{{- end}}
            <td><strong>{{$f.Column.Label}}</strong><br><span style="font-size: 11px; color: #999;">{{$f.Column.Ref}}</span></td>
            <td>{{$f.NormalizedLeft}}</td>
            <td>{{$f.NormalizedRight}}</td>
            <td style="text-align: center;">{{if $f.Identical}}✅ Idêntico{{else}}❌ Diferente{{end}}</td>
        </tr>
{{- end}}
{{- end}}
        </tbody></table>
{{end}}`

var reportTmpl = template.Must(template.New("report").Parse(reportHTML))

// reportData is the root payload handed to the report template.
type reportData struct {
	GeneratedAt    string
	Registration   string
	Vertices       sectionData
	Segments       sectionData
	TotalIdentical int
	TotalDifferent int
	RecordCount    int
}

// sectionData feeds one record-family table.
type sectionData struct {
	Title      string
	Caption    string
	Unit       string
	LeftLabel  string
	RightLabel string
	Rowspan    int
	Records    []reconcile.RecordComparison
	Identical  int
	Different  int
	DiffList   string
}

// RenderHTML produces the conference report for a completed reconciliation.
func RenderHTML(rep *reconcile.Report) ([]byte, error) {
	if rep == nil || rep.Vertices == nil || rep.Segments == nil {
		return nil, &RenderError{Message: "report is missing a comparison section"}
	}

	data := reportData{
		GeneratedAt:    rep.GeneratedAt.Format("02/01/2006 às 15:04:05"),
		Registration:   rep.Registration,
		Vertices:       newSection(rep.Vertices, "📐 COMPARAÇÃO DE VÉRTICES", "Cada bloco representa um vértice completo com todas as suas coordenadas", "Vértice"),
		Segments:       newSection(rep.Segments, "🔄 COMPARAÇÃO DE SEGMENTOS VANTE", "Cada bloco representa um segmento completo com todas as suas medidas", "Segmento"),
		TotalIdentical: rep.TotalIdentical(),
		TotalDifferent: rep.TotalDifferent(),
		RecordCount:    len(rep.Vertices.Records),
	}

	var out strings.Builder
	if err := reportTmpl.Execute(&out, data); err != nil {
		return nil, &RenderError{Message: "executing report template", Cause: err}
	}
	return []byte(out.String()), nil
}

func newSection(cmp *reconcile.KindComparison, title, caption, unit string) sectionData {
	return sectionData{
		Title:      title,
		Caption:    caption,
		Unit:       unit,
		LeftLabel:  cmp.LeftLabel,
		RightLabel: cmp.RightLabel,
		Rowspan:    len(cmp.Kind.Columns),
		Records:    cmp.Records,
		Identical:  cmp.Summary.Identical,
		Different:  cmp.Summary.Different,
		DiffList:   diffList(cmp.Summary.RecordsWithDiffs),
	}
}

// diffList formats the diverging record numbers for the summary box.
func diffList(numbers []int) string {
	if len(numbers) == 0 {
		return "Nenhum"
	}
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("#%d", n)
	}
	return strings.Join(parts, ", ")
}

// HTMLFileName is the conventional report name for a registration.
func HTMLFileName(registration string) string {
	return fmt.Sprintf("Relatório_INCRA_%s.html", registration)
}
