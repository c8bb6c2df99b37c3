package process

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/viant/flowline/internal/yml"
	"github.com/viant/flowline/model"
	"github.com/viant/flowline/model/bpmn"
)

const flowElementsKey = "flowElements"

// Decode parses a process document. The document is either a mapping with
// id, name and flowElements keys or a bare element sequence; JSON is
// accepted as a YAML subset.
func Decode(URL string, data []byte) (*model.Process, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse process %s: %w", URL, err)
	}
	root := yml.Root(&node)
	if root == nil || root.Kind == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyProcess, URL)
	}
	process := model.NewProcess(nameFromURL(URL))
	if URL != "" {
		process.Source = &model.Source{URL: URL}
	}
	elementsNode := root
	if root.Kind == yaml.MappingNode {
		if id := root.String("id"); id != "" {
			process.ID = id
		}
		process.Name = root.String("name")
		elementsNode = root.Lookup(flowElementsKey)
	}
	if elementsNode == nil || len(elementsNode.Content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyProcess, URL)
	}
	elements, err := decodeElements(elementsNode)
	if err != nil {
		return nil, fmt.Errorf("failed to decode process %s: %w", URL, err)
	}
	process.Add(elements...)
	if issues := process.Validate(); len(issues) > 0 {
		return nil, issues[0]
	}
	return process, nil
}

func decodeElements(node *yml.Node) ([]bpmn.Element, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s should be a sequence at %s", flowElementsKey, node.Position())
	}
	ret := make([]bpmn.Element, 0, len(node.Content))
	err := node.Items(func(_ int, item *yml.Node) error {
		element, err := decodeElement(item)
		if err != nil {
			return err
		}
		ret = append(ret, element)
		return nil
	})
	return ret, err
}

func decodeElement(node *yml.Node) (bpmn.Element, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("flow element should be a mapping at %s", node.Position())
	}
	var element bpmn.Element
	switch bpmn.Classify(node.String("$type")) {
	case bpmn.KindTask:
		element = &bpmn.Task{}
	case bpmn.KindEvent:
		element = &bpmn.Event{}
	case bpmn.KindGateway:
		element = &bpmn.Gateway{}
	case bpmn.KindSequenceFlow:
		element = &bpmn.SequenceFlow{}
	case bpmn.KindSubProcess:
		element = &bpmn.SubProcess{}
	default:
		element = &bpmn.Unknown{}
	}
	if err := node.Decode(element); err != nil {
		return nil, fmt.Errorf("failed to decode %s at %s: %w", node.String("id"), node.Position(), err)
	}
	subProcess, ok := element.(*bpmn.SubProcess)
	if !ok {
		return element, nil
	}
	if children := node.Lookup(flowElementsKey); children != nil {
		elements, err := decodeElements(children)
		if err != nil {
			return nil, fmt.Errorf("failed to decode children of %s: %w", subProcess.ID, err)
		}
		subProcess.Elements = elements
	}
	return subProcess, nil
}

// nameFromURL returns the document file name without extension.
func nameFromURL(URL string) string {
	if URL == "" {
		return ""
	}
	base := path.Base(URL)
	return strings.TrimSuffix(base, path.Ext(base))
}
