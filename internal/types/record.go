package types

import "time"

// Collection names the three persisted record kinds. One remote
// collection per kind, one document per record.
type Collection string

const (
	CollectionHotkeys   Collection = "hotkeys"
	CollectionWorkflows Collection = "workflows"
	CollectionNotes     Collection = "notes"
)

func Collections() []Collection {
	return []Collection{CollectionHotkeys, CollectionWorkflows, CollectionNotes}
}

// Hotkey is a keyboard shortcut entry. Static entries ship with the
// app and have no owner; custom entries belong to one principal.
type Hotkey struct {
	ID          string `json:"id"`
	Command     string `json:"command"`
	Keys        string `json:"keys"`
	Description string `json:"description,omitempty"`
	Scope       Scope  `json:"scope"`
	IsCustom    bool   `json:"is_custom,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
}

type WorkflowStep struct {
	Description string `json:"description"`
	Timecode    string `json:"timecode,omitempty"`
}

// Workflow is an ordered how-to with optional video deep links. Each
// step may carry a free-text time-code ("1m30s") into the video.
type Workflow struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Steps       []WorkflowStep `json:"steps,omitempty"`
	VideoRef    string         `json:"video_ref,omitempty"`
	Scope       Scope          `json:"scope"`
	IsCustom    bool           `json:"is_custom,omitempty"`
	OwnerID     string         `json:"owner_id,omitempty"`
}

// Note is a free-form personal note. Notes are always user-authored;
// timestamps are assigned by the store.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Scope     Scope     `json:"scope"`
	IsCustom  bool      `json:"is_custom,omitempty"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Patch types carry only the fields an editor touched. Nil means
// "leave the stored value alone"; the store merges field-by-field so
// untouched fields (owner id included) survive a replace.

type HotkeyPatch struct {
	Command     *string `json:"command,omitempty"`
	Keys        *string `json:"keys,omitempty"`
	Description *string `json:"description,omitempty"`
	Scope       *Scope  `json:"scope,omitempty"`
}

type WorkflowPatch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Steps       *[]WorkflowStep `json:"steps,omitempty"`
	VideoRef    *string         `json:"video_ref,omitempty"`
	Scope       *Scope          `json:"scope,omitempty"`
}

type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Scope   *Scope  `json:"scope,omitempty"`
}
