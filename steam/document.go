package steam

// Document is a raw, untyped Web API response. Values are scalars, nested
// documents or lists of documents depending on the endpoint, and any level
// may be missing or empty.
type Document map[string]interface{}

// KeyFromDoc pulls key out of doc. A nil or empty doc fails with
// NoResultError. An absent key, or one holding a falsy value, fails with
// MissingKeyError.
//
// Every read of a nested response field goes through here (or the wrappers
// below) so that failures always name the calling operation and the key that
// broke.
func KeyFromDoc(where string, key string, doc Document) (interface{}, error) {
	if len(doc) == 0 {
		return nil, NoResultError{Where: where}
	}
	v, found := doc[key]
	if !found || falsy(v) {
		return nil, MissingKeyError{Where: where, Key: key, Doc: doc}
	}
	return v, nil
}

// ResponseFromResult unwraps the "response" envelope nearly every Web API
// call nests its payload under.
func ResponseFromResult(where string, doc Document) (Document, error) {
	v, err := KeyFromDoc(where, "response", doc)
	if err != nil {
		return nil, err
	}
	response, ok := asDoc(v)
	if !ok {
		return nil, MissingKeyError{Where: where, Key: "response", Doc: doc}
	}
	return response, nil
}

// EnsureValueForKey extracts key and requires it to equal want.
func EnsureValueForKey(where string, key string, want interface{}, doc Document) error {
	v, err := KeyFromDoc(where, key, doc)
	if err != nil {
		return err
	}
	if !looseEqual(v, want) {
		return UnexpectedValueError{Where: where, Key: key, Expected: want, Actual: v, Doc: doc}
	}
	return nil
}

// falsy reports whether a value counts as missing. Steam endpoints omit,
// blank and zero fields interchangeably, so all of them fold into the
// missing case. A genuinely zero-valued key is therefore indistinguishable
// from an absent one; if that ever needs correcting it only changes here.
func falsy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	case int:
		return val == 0
	case int64:
		return val == 0
	case []interface{}:
		return len(val) == 0
	case Document:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	default:
		return false
	}
}

// looseEqual compares extracted values against required ones. JSON numbers
// decode as float64, so numeric operands compare by value rather than type.
func looseEqual(a interface{}, b interface{}) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func asFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

func asDoc(v interface{}) (Document, bool) {
	switch val := v.(type) {
	case Document:
		return val, true
	case map[string]interface{}:
		return Document(val), true
	default:
		return nil, false
	}
}

// docList narrows an extracted value to a list of documents. A present but
// wrong-shaped value fails the same way as a missing one.
func docList(where string, key string, doc Document) ([]Document, error) {
	v, err := KeyFromDoc(where, key, doc)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, MissingKeyError{Where: where, Key: key, Doc: doc}
	}
	docs := make([]Document, 0, len(items))
	for _, item := range items {
		d, ok := asDoc(item)
		if !ok {
			return nil, MissingKeyError{Where: where, Key: key, Doc: doc}
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// Optional field reads. These apply to record documents that have already
// been extracted and validated; missing fields yield zero values rather than
// errors.

func docString(doc Document, key string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return ""
}

func docInt(doc Document, key string) int {
	if f, ok := asFloat(doc[key]); ok {
		return int(f)
	}
	return 0
}

func docInt64(doc Document, key string) int64 {
	if f, ok := asFloat(doc[key]); ok {
		return int64(f)
	}
	return 0
}

func docBool(doc Document, key string) bool {
	if b, ok := doc[key].(bool); ok {
		return b
	}
	return false
}
