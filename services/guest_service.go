package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/google/uuid"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	apperrors "jvracle/errors"
	"jvracle/models"
	"jvracle/services/logger"
	"jvracle/storage"
)

// GuestService quản lý hồ sơ khách và tìm kiếm gần đúng theo tên
type GuestService struct {
	mu     sync.RWMutex
	guests map[string]models.Guest

	store storage.Store
	log   logger.Logger
}

// NewGuestService tạo instance mới của GuestService
func NewGuestService(store storage.Store, log logger.Logger) *GuestService {
	return &GuestService{
		guests: make(map[string]models.Guest),
		store:  store,
		log:    log,
	}
}

// CreateGuest tạo hồ sơ khách mới
func (s *GuestService) CreateGuest(guest models.Guest) (*models.Guest, error) {
	if guest.LastName == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "guest last name is required", nil)
	}
	if guest.ID == "" {
		guest.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.guests[guest.ID] = guest
	s.mu.Unlock()

	if err := s.store.SaveGuest(&guest); err != nil {
		s.log.Error("Không lưu được guest %s vào store: %v", guest.ID, err)
	}
	out := guest
	return &out, nil
}

// GetGuest trả về hồ sơ khách theo id
func (s *GuestService) GetGuest(id string) (*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	guest, ok := s.guests[id]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("guest %s not found", id), apperrors.ErrGuestNotFound)
	}
	out := guest
	return &out, nil
}

// SearchGuests tìm khách theo tên gần đúng: chuẩn hóa bỏ dấu, khớp
// closestmatch trên danh sách tên rồi xếp hạng theo độ tương đồng
// levenshtein
func (s *GuestService) SearchGuests(query string, limit int) []models.Guest {
	if limit <= 0 {
		limit = 10
	}
	normalizedQuery := normalizeInput(query)
	if normalizedQuery == "" {
		return nil
	}

	s.mu.RLock()
	byName := make(map[string][]models.Guest)
	names := make([]string, 0, len(s.guests))
	for _, g := range s.guests {
		name := normalizeInput(g.FullName())
		if _, seen := byName[name]; !seen {
			names = append(names, name)
		}
		byName[name] = append(byName[name], g)
	}
	s.mu.RUnlock()

	if len(names) == 0 {
		return nil
	}

	matcher := createMatcher(names)
	candidates := matcher.ClosestN(normalizedQuery, limit)

	type scored struct {
		guest models.Guest
		score float64
	}
	var results []scored
	for _, name := range candidates {
		score := calculateSimilarity(normalizedQuery, name)
		if score < 0.3 && !strings.Contains(name, normalizedQuery) {
			continue
		}
		for _, g := range byName[name] {
			results = append(results, scored{guest: g, score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })

	guests := make([]models.Guest, 0, limit)
	for _, r := range results {
		if len(guests) == limit {
			break
		}
		guests = append(guests, r.guest)
	}
	return guests
}

// Restore nạp lại hồ sơ khách từ store lúc khởi động
func (s *GuestService) Restore() error {
	guests, err := s.store.LoadGuests()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range guests {
		s.guests[guests[i].ID] = guests[i]
	}
	return nil
}

// Hàm chuẩn hóa chuỗi
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/maxLen
}
