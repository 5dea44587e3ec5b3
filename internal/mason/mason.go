// Package mason builds the Mason hypermedia envelopes returned by every GET
// endpoint: a namespace declaration, the entity's serialized attributes at
// the top level, and machine-discoverable controls describing the available
// transitions, with the JSON schema embedded in create and edit forms.
package mason

import (
	"moviereview/internal/schema"
)

// Namespace is the control-relation prefix of this API; its name entry points
// at the link-relations documentation.
const (
	Namespace        = "moviereviewmeta"
	LinkRelationsURL = "/moviereviewmeta/link-relations#"
)

// Relation names used when one document links to another resource's
// controls under the API namespace.
const (
	RelMoviesAll       = Namespace + ":movies-all"
	RelUsersAll        = Namespace + ":users-all"
	RelCategoriesAll   = Namespace + ":categories-all"
	RelAddMovie        = Namespace + ":add-movie"
	RelAddUser         = Namespace + ":add-user"
	RelAddCategory     = Namespace + ":add-category"
	RelAddReview       = Namespace + ":add-review"
	RelDelete          = Namespace + ":delete"
	RelReviewsForMovie = Namespace + ":reviews-for-movie"
	RelReviewsByUser   = Namespace + ":reviews-by-user"
	RelLogin           = Namespace + ":login"
	RelCurrentUser     = Namespace + ":current-user"
)

// Control is a single hypermedia control: a link when only Href is set, a
// form when Method, Encoding and Schema describe how to submit it.
type Control struct {
	Href     string         `json:"href"`
	Method   string         `json:"method,omitempty"`
	Encoding string         `json:"encoding,omitempty"`
	Title    string         `json:"title,omitempty"`
	Schema   *schema.Schema `json:"schema,omitempty"`
}

// Document is a Mason response body under construction. Entity attributes sit
// at the top level next to the @namespace and @controls members.
type Document map[string]any

// New starts a document from an entity's serialized attributes. Pass nil for
// a document that only carries controls.
func New(attributes map[string]any) Document {
	doc := Document{}
	for key, value := range attributes {
		doc[key] = value
	}
	return doc
}

// AddNamespace declares the API namespace. It is attached once per top-level
// document and never on nested items.
func (d Document) AddNamespace() {
	d["@namespace"] = map[string]any{
		Namespace: map[string]any{"name": LinkRelationsURL},
	}
}

// AddControl attaches a named control, creating the @controls member on first
// use.
func (d Document) AddControl(name string, ctrl Control) {
	controls, ok := d["@controls"].(map[string]Control)
	if !ok {
		controls = map[string]Control{}
		d["@controls"] = controls
	}
	controls[name] = ctrl
}

// AddItems sets the ordered item documents of a collection body.
func (d Document) AddItems(items []Document) {
	d["items"] = items
}

func (d Document) AddControlUp(href string) {
	d.AddControl("up", Control{Href: href})
}

func (d Document) AddControlProfile(href string) {
	d.AddControl("profile", Control{Href: href})
}
