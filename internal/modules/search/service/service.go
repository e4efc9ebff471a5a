package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/sanitize"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

const membersIndex = "members"

// Member is the search document for one teacher or student.
type Member struct {
	ID       string `json:"id"`
	UserID   uint   `json:"user_id"`
	SchoolID uint   `json:"school_id"`
	Role     string `json:"role"`
	SapID    string `json:"sap_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type MemberSearchService interface {
	IndexMember(member Member) error
	DeleteMember(userID uint) error
	Search(schoolID uint, query, role string, limit int64) ([]Member, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

// NewMemberSearchService returns a no-op service when client is nil.
func NewMemberSearchService(client meilisearch.ServiceManager) MemberSearchService {
	if client == nil {
		return noopSearchService{}
	}

	s := &meiliSearchService{client: client}
	s.initIndex()
	return s
}

func (s *meiliSearchService) initIndex() {
	filterable := []any{"school_id", "role"}
	if _, err := s.client.Index(membersIndex).UpdateFilterableAttributes(&filterable); err != nil {
		logger.Log.Warn("failed to update members filterable attributes", zap.Error(err))
		return
	}
	logger.Log.Info("meilisearch members index initialized")
}

func (s *meiliSearchService) IndexMember(member Member) error {
	member.ID = strconv.FormatUint(uint64(member.UserID), 10)
	member.Name = sanitize.Text(member.Name)

	task, err := s.client.Index(membersIndex).AddDocuments([]Member{member}, strPtr("id"))
	if err != nil {
		return fmt.Errorf("index member %d: %w", member.UserID, err)
	}
	logger.Log.Debug("indexed member", zap.Uint("user_id", member.UserID), zap.Int64("task_uid", task.TaskUID))
	return nil
}

func (s *meiliSearchService) DeleteMember(userID uint) error {
	if _, err := s.client.Index(membersIndex).DeleteDocument(strconv.FormatUint(uint64(userID), 10)); err != nil {
		return fmt.Errorf("delete member %d: %w", userID, err)
	}
	return nil
}

func (s *meiliSearchService) Search(schoolID uint, query, role string, limit int64) ([]Member, error) {
	filters := []string{fmt.Sprintf("school_id = %d", schoolID)}
	if role != "" {
		filters = append(filters, fmt.Sprintf("role = %q", role))
	}

	raw, err := s.client.Index(membersIndex).SearchRaw(query, &meilisearch.SearchRequest{
		Filter: strings.Join(filters, " AND "),
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}

	var result struct {
		Hits []Member `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &result); err != nil {
		return nil, fmt.Errorf("decode search result: %w", err)
	}
	return result.Hits, nil
}

type noopSearchService struct{}

func (noopSearchService) IndexMember(Member) error { return nil }
func (noopSearchService) DeleteMember(uint) error  { return nil }
func (noopSearchService) Search(uint, string, string, int64) ([]Member, error) {
	return []Member{}, nil
}

func strPtr(s string) *string {
	return &s
}
