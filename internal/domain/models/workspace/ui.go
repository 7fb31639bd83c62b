package workspace

// ModalType names the dialog currently open in the client
type ModalType string

const (
	ModalAddFile      ModalType = "addFile"
	ModalShare        ModalType = "share"
	ModalMemberManage ModalType = "memberManage"
)

// UIState is the per-user set of cross-cutting client flags
type UIState struct {
	ActiveModal      *ModalType `json:"active_modal"`
	SelectedIDs      []string   `json:"selected_ids"`
	PinnedMode       bool       `json:"pinned_mode"`
	TreeVisible      bool       `json:"tree_visible"`
	SidebarCollapsed bool       `json:"sidebar_collapsed"`
}
