// Package company holds the company profile and the uploaded logo printed on
// receipts. It replaces what used to live in per-session UI globals: one
// explicit value constructed at startup and handed to the handlers that
// need it.
package company

import "sync"

type Profile struct {
	Name    string `json:"company_name"`
	Address string `json:"company_address"`
	CUI     string `json:"cui"`
	RegCom  string `json:"reg_com"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type Service struct {
	mu       sync.RWMutex
	profile  Profile
	logo     []byte
	logoMIME string
}

func New(p Profile) *Service {
	return &Service{profile: p}
}

func (s *Service) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Service) SetProfile(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// Logo returns the uploaded logo bytes and their MIME type, or nil when no
// logo has been uploaded.
func (s *Service) Logo() ([]byte, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logo, s.logoMIME
}

func (s *Service) SetLogo(data []byte, mime string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logo = data
	s.logoMIME = mime
}
