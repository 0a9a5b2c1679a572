package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/KilimcininKorOglu/berx/internal/ber"
	"github.com/KilimcininKorOglu/berx/internal/codec"
	"github.com/KilimcininKorOglu/berx/internal/metrics"
)

func summaryEntries(res *codec.Result) []string {
	if sb, ok := res.Summary.(*codec.SummaryBuffer); ok {
		return sb.Entries()
	}
	return nil
}

func writeTree(w io.Writer, label string, res *codec.Result) error {
	status := metrics.Status(res)
	if _, err := fmt.Fprintf(w, "%s: %d bytes, %s\n", label, res.Consumed, status); err != nil {
		return err
	}

	if res.Root != nil {
		out, err := pterm.DefaultTree.WithRoot(pterm.TreeNode{
			Children: []pterm.TreeNode{treeNode(res.Root)},
		}).Srender()
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}

	if entries := summaryEntries(res); len(entries) > 0 {
		if _, err := fmt.Fprintf(w, "summary: %s\n", strings.Join(entries, ", ")); err != nil {
			return err
		}
	}

	if len(res.Anomalies) == 0 {
		return nil
	}
	data := pterm.TableData{{"Kind", "Offset", "Node", "Fatal", "Detail"}}
	for _, a := range res.Anomalies {
		data = append(data, []string{
			a.Kind.String(),
			fmt.Sprint(a.Offset),
			a.Node,
			fmt.Sprint(a.Fatal),
			a.Detail,
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "anomalies:\n%s\n", out)
	return err
}

func treeNode(n *codec.Node) pterm.TreeNode {
	t := pterm.TreeNode{Text: nodeLine(n)}
	for _, c := range n.Children {
		t.Children = append(t.Children, treeNode(c))
	}
	return t
}

// nodeLine renders "name (Type) = value [offset+length] markers".
func nodeLine(n *codec.Node) string {
	var sb strings.Builder
	sb.WriteString(n.Name)
	if n.Type != "" && n.Type != n.Name {
		sb.WriteString(" (")
		sb.WriteString(n.Type)
		sb.WriteString(")")
	}

	if v := n.ValueString(); v != "" && n.Kind != codec.KindChoice {
		sb.WriteString(" = ")
		sb.WriteString(v)
	}

	if !n.Absent {
		fmt.Fprintf(&sb, " [%d+%d]", n.Offset, n.Length)
	}

	var marks []string
	switch {
	case n.Defaulted:
		marks = append(marks, "default")
	case n.Absent:
		marks = append(marks, "absent")
	}
	if n.Extension {
		marks = append(marks, "extension")
	}
	if n.Malformed {
		marks = append(marks, "malformed")
	}
	if len(marks) > 0 {
		sb.WriteString(" {")
		sb.WriteString(strings.Join(marks, ","))
		sb.WriteString("}")
	}
	return sb.String()
}

type resultJSON struct {
	Protocol  string        `json:"protocol"`
	Consumed  int           `json:"consumed"`
	Status    string        `json:"status"`
	Malformed bool          `json:"malformed"`
	Summary   []string      `json:"summary,omitempty"`
	Anomalies []anomalyJSON `json:"anomalies,omitempty"`
	Root      *nodeJSON     `json:"root,omitempty"`
}

type anomalyJSON struct {
	Kind   codec.AnomalyKind `json:"kind"`
	Offset int               `json:"offset"`
	Node   string            `json:"node"`
	Detail string            `json:"detail"`
	Fatal  bool              `json:"fatal,omitempty"`
}

type nodeJSON struct {
	Name      string      `json:"name"`
	Type      string      `json:"type,omitempty"`
	Tag       string      `json:"tag,omitempty"`
	Offset    int         `json:"offset"`
	Length    int         `json:"length"`
	Kind      string      `json:"kind"`
	Value     any         `json:"value,omitempty"`
	Label     string      `json:"label,omitempty"`
	Absent    bool        `json:"absent,omitempty"`
	Defaulted bool        `json:"defaulted,omitempty"`
	Extension bool        `json:"extension,omitempty"`
	Malformed bool        `json:"malformed,omitempty"`
	Children  []*nodeJSON `json:"children,omitempty"`
}

func writeJSON(w io.Writer, label string, res *codec.Result) error {
	doc := resultJSON{
		Protocol:  label,
		Consumed:  res.Consumed,
		Status:    metrics.Status(res),
		Malformed: res.Malformed(),
		Summary:   summaryEntries(res),
	}
	for _, a := range res.Anomalies {
		doc.Anomalies = append(doc.Anomalies, anomalyJSON{
			Kind:   a.Kind,
			Offset: a.Offset,
			Node:   a.Node,
			Detail: a.Detail,
			Fatal:  a.Fatal,
		})
	}
	if res.Root != nil {
		doc.Root = toJSON(res.Root)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func toJSON(n *codec.Node) *nodeJSON {
	j := &nodeJSON{
		Name:      n.Name,
		Type:      n.Type,
		Offset:    n.Offset,
		Length:    n.Length,
		Kind:      n.Kind.String(),
		Value:     jsonValue(n.Value),
		Label:     n.Label,
		Absent:    n.Absent,
		Defaulted: n.Defaulted,
		Extension: n.Extension,
		Malformed: n.Malformed,
	}
	if !n.Absent {
		j.Tag = n.Tag.String()
	}
	for _, c := range n.Children {
		j.Children = append(j.Children, toJSON(c))
	}
	return j
}

// jsonValue maps node values onto JSON scalars. Bytes become hex.
func jsonValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return hex.EncodeToString(x)
	case *big.Int:
		return x.String()
	case ber.OID:
		return x.String()
	case ber.BitString:
		return x.String()
	}
	return v
}

func writeSamples(w io.Writer, samples []metrics.Sample) error {
	data := pterm.TableData{{"Metric", "Labels", "Value"}}
	for _, s := range samples {
		data = append(data, []string{s.Name, formatLabels(s.Labels), fmt.Sprint(s.Value)})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "metrics:\n%s\n", out)
	return err
}

func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + labels[k]
	}
	return strings.Join(parts, ",")
}
