/*
Package domdbg implements helpers to debug a DOM tree with behaviour applied.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/behaviour/dom"
	"github.com/npillmayer/behaviour/dom/w3cdom"
	tp "github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// Tagger reports the behaviours applied to a node, e.g. a behaviour.Registry.
type Tagger interface {
	Applied(w3cdom.Node) []string
}

// Tree renders a DOM as an indented tree. Elements and text nodes are
// included, text nodes consisting of white space only are omitted.
// If tagger is non-nil, applied behaviours are shown in brackets in
// front of an element.
func Tree(doc *dom.Document, tagger Tagger) string {
	p := tp.New()
	root := doc.Root()
	if root == nil {
		return p.String()
	}
	top := p.AddBranch(root.NodeName())
	for _, ch := range childrenOf(root) {
		treeNode(top, ch, tagger)
	}
	return p.String()
}

func treeNode(p tp.Tree, n *dom.W3CNode, tagger Tagger) {
	if n.NodeType() == html.TextNode {
		if strings.TrimSpace(n.NodeValue()) != "" {
			p.AddNode(shortString(n.NodeValue()))
		}
		return
	}
	if !n.IsElement() {
		return
	}
	var branch tp.Tree
	if tags := applied(tagger, n); len(tags) > 0 {
		branch = p.AddMetaBranch(strings.Join(tags, ", "), n.String())
	} else {
		branch = p.AddBranch(n.String())
	}
	for _, ch := range childrenOf(n) {
		treeNode(branch, ch, tagger)
	}
}

func childrenOf(n *dom.W3CNode) []*dom.W3CNode {
	list := n.ChildNodes()
	children := make([]*dom.W3CNode, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		children = append(children, list.Item(i).(*dom.W3CNode))
	}
	return children
}

func applied(tagger Tagger, n *dom.W3CNode) []string {
	if tagger == nil {
		return nil
	}
	return tagger.Applied(n)
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname      string
	NodeTmpl      *template.Template
	EdgeTmpl      *template.Template
	BehaviourTmpl *template.Template
}

// ToGraphViz outputs a diagram for a DOM tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the DOM and a Writer.
// If tagger is non-nil, the behaviours applied to an element are drawn
// as a record attached to the element.
func ToGraphViz(doc *dom.Document, w io.Writer, tagger Tagger) error {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.BehaviourTmpl = template.Must(template.New("behaviour").Parse(behaviourTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*html.Node]string, 4096)
	if root := doc.Root(); root != nil {
		if err = nodes(root, w, dict, tagger, &gparams); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a DOM and a testing.T, it will
// create a Graphiviz image of the DOM tree and write it to a file in the
// current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(doc *dom.Document, tagger Tagger, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "dom.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing DOM digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(doc, tmpfile, tagger); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing DOM tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N    *dom.W3CNode
	Name string
}

func nodes(n *dom.W3CNode, w io.Writer, dict map[*html.Node]string, tagger Tagger,
	gparams *graphParamsType) error {
	//
	if err := domNode(n, w, dict, tagger, gparams); err != nil {
		return err
	}
	for _, c := range childrenOf(n) {
		if !drawable(c) {
			continue
		}
		if err := nodes(c, w, dict, tagger, gparams); err != nil {
			return err
		}
		if err := domEdge(n, c, w, dict, gparams); err != nil {
			return err
		}
	}
	return nil
}

// drawable filters out comments, doctypes and blank text.
func drawable(n *dom.W3CNode) bool {
	if n.IsElement() {
		return true
	}
	return n.NodeType() == html.TextNode && strings.TrimSpace(n.NodeValue()) != ""
}

func domNode(n *dom.W3CNode, w io.Writer, dict map[*html.Node]string, tagger Tagger,
	gparams *graphParamsType) error {
	//
	name := dict[n.HTMLNode()]
	if name == "" {
		l := len(dict) + 1
		name = fmt.Sprintf("node%05d", l)
		dict[n.HTMLNode()] = name
	}
	if err := gparams.NodeTmpl.Execute(w, &node{n, name}); err != nil {
		return err
	}
	if tags := applied(tagger, n); len(tags) > 0 {
		return gparams.BehaviourTmpl.Execute(w, behaviours{Name: name, Selectors: tags})
	}
	return nil
}

type behaviours struct {
	Name      string
	Selectors []string
}

type edge struct {
	N1, N2 node
}

func domEdge(n1 *dom.W3CNode, n2 *dom.W3CNode, w io.Writer, dict map[*html.Node]string,
	gparams *graphParamsType) error {
	//
	name1 := dict[n1.HTMLNode()]
	name2 := dict[n2.HTMLNode()]
	e := edge{node{n1, name1}, node{n2, name2}}
	return gparams.EdgeTmpl.Execute(w, e)
}

func shortText(n *dom.W3CNode) string {
	return "\"\\\"" + shortString(n.HTMLNode().Data) + "\\\"\""
}

func shortString(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > 10 {
		s = string(r[:10]) + "..."
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if eq .N.NodeName "#text" }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .N.NodeName }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const behaviourTmpl = `{{ .Name }}_b [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center"><font color="white">behaviour</font></td></tr>
      {{ range .Selectors }}
      <tr><td align="left">{{ . | html }}</td></tr>
      {{ end }}
    </table>> ] ;
{{ .Name }} -> {{ .Name }}_b [dir=none weight=1 style="dashed"] ;
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`
