package bpmn

import "fmt"

// ResolveRef returns the element id a reference points to, or "" when the
// reference is empty or of an unsupported shape.
func ResolveRef(ref Ref) string {
	switch actual := ref.(type) {
	case nil:
		return ""
	case string:
		return actual
	case *string:
		if actual == nil {
			return ""
		}
		return *actual
	case Element:
		if actual == nil {
			return ""
		}
		return actual.Base().ID
	case interface{ RefID() string }:
		return actual.RefID()
	case map[string]interface{}:
		return idValue(actual["id"])
	case map[string]string:
		return actual["id"]
	case map[interface{}]interface{}:
		return idValue(actual["id"])
	}
	return ""
}

func idValue(value interface{}) string {
	switch actual := value.(type) {
	case nil:
		return ""
	case string:
		return actual
	case fmt.Stringer:
		return actual.String()
	}
	return fmt.Sprintf("%v", value)
}

// ExtractSourceID returns the id of the flow source.
func ExtractSourceID(flow *SequenceFlow) string {
	if flow == nil {
		return ""
	}
	return ResolveRef(flow.SourceRef)
}

// ExtractTargetID returns the id of the flow target.
func ExtractTargetID(flow *SequenceFlow) string {
	if flow == nil {
		return ""
	}
	return ResolveRef(flow.TargetRef)
}

// ExtractAttachedToID returns the id of the activity a boundary event is attached to.
func ExtractAttachedToID(event *Event) string {
	if event == nil {
		return ""
	}
	return ResolveRef(event.AttachedToRef)
}
