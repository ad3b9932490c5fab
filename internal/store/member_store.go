package store

import (
	"strconv"

	"github.com/eaglebank/console/shared/models"
)

type MemberStore struct {
	*Collection[models.Member]
}

func NewMemberStore() *MemberStore {
	return &MemberStore{Collection: NewCollection(func(m models.Member) string {
		return strconv.FormatInt(m.ID, 10)
	})}
}

func (s *MemberStore) SetMembers(members []models.Member) { s.Set(members) }

func (s *MemberStore) AddMember(member models.Member) { s.Add(member) }

func (s *MemberStore) Members() []models.Member { return s.Items() }

func (s *MemberStore) MemberByID(id int64) (models.Member, bool) {
	return s.Lookup(strconv.FormatInt(id, 10))
}
