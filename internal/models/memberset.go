package models

// SetKind — вид множества в реестре переключателей.
type SetKind string

const (
	// SetSavedPosts — savedPosts/{uid}.posts, владелец — пользователь.
	SetSavedPosts SetKind = "saved_posts"
	// SetVideoLikes — videos/{id}.likes, владелец — видео.
	SetVideoLikes SetKind = "video_likes"
)

// MemberSet — неупорядоченное множество идентификаторов одного владельца.
// Version == 0 означает, что документ ещё не создан.
type MemberSet struct {
	Kind    SetKind  `json:"kind"`
	Owner   string   `json:"owner"`
	Members []string `json:"members"`
	Version int64    `json:"-"`
}

// Contains сообщает, входит ли id во множество.
func (s MemberSet) Contains(id string) bool {
	for _, m := range s.Members {
		if m == id {
			return true
		}
	}

	return false
}

// Toggle возвращает копию множества с переключённым id и новое состояние id.
func (s MemberSet) Toggle(id string) (MemberSet, bool) {
	out := s
	out.Members = make([]string, 0, len(s.Members)+1)

	present := false
	for _, m := range s.Members {
		if m == id {
			present = true
			continue
		}
		out.Members = append(out.Members, m)
	}

	if present {
		return out, false
	}

	out.Members = append(out.Members, id)
	return out, true
}
