package valutatrade

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

// Document filenames under the store's data directory.
const (
	usersFile      = "users.json"
	portfoliosFile = "portfolios.json"
	ratesFile      = "rates.json"
	historyFile    = "history.json"
	sessionFile    = "session.json"
)

// historyLimit bounds the rate history document. Oldest records are evicted
// first once the bound is exceeded.
const historyLimit = 500

// Store persists every document as a JSON file under a single data
// directory. Documents are small and rewritten whole, read-modify-write
// with last-writer-wins semantics: there is no cross-process locking, and
// concurrent writers can silently lose updates. Each write goes to a
// temporary file first and is renamed into place, so a crash mid-write
// never leaves a torn document.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first write.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Dir returns the store's data directory.
func (s *Store) Dir() string { return s.dir }

// HistoryRecord is one merged rate observation, kept for audit and trends.
type HistoryRecord struct {
	ID        string    `json:"id"`
	Pair      string    `json:"pair"`
	Rate      float64   `json:"rate"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// Session is the persisted login session shared by one-shot commands.
type Session struct {
	UserID   int       `json:"user_id"`
	Username string    `json:"username"`
	Since    time.Time `json:"since"`
}

// Wire shapes. Persisted field names are part of the on-disk format and
// must not drift with the Go structs.

type juser struct {
	UserID           int       `json:"user_id"`
	Username         string    `json:"username"`
	HashedPassword   string    `json:"hashed_password"`
	Salt             string    `json:"salt"`
	RegistrationDate time.Time `json:"registration_date"`
}

type jwallet struct {
	CurrencyCode string          `json:"currency_code"`
	Balance      decimal.Decimal `json:"balance"`
}

type jportfolio struct {
	UserID  int                `json:"user_id"`
	Wallets map[string]jwallet `json:"wallets"`
}

type jquote struct {
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
	Source    string    `json:"source"`
}

type jrates struct {
	Pairs       map[string]jquote `json:"pairs"`
	LastRefresh time.Time         `json:"last_refresh,omitzero"`
}

// Users loads the full users collection. A missing document is an empty
// collection, not an error.
func (s *Store) Users() ([]*User, error) {
	var records []juser
	if err := s.readJSON(usersFile, &records); err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(records))
	for _, r := range records {
		users = append(users, &User{
			ID:           r.UserID,
			Name:         r.Username,
			PasswordHash: []byte(r.HashedPassword),
			RegisteredAt: r.RegistrationDate,
		})
	}
	return users, nil
}

// SaveUsers rewrites the whole users collection.
func (s *Store) SaveUsers(users []*User) error {
	records := make([]juser, 0, len(users))
	for _, u := range users {
		records = append(records, juser{
			UserID:         u.ID,
			Username:       u.Name,
			HashedPassword: string(u.PasswordHash),
			// bcrypt embeds the salt inside the hash; the field stays for
			// document compatibility.
			Salt:             "",
			RegistrationDate: u.RegisteredAt,
		})
	}
	return s.writeJSON(usersFile, records)
}

// Portfolio loads one user's portfolio. ok is false when none is persisted.
func (s *Store) Portfolio(userID int) (p *Portfolio, ok bool, err error) {
	var records []jportfolio
	if err := s.readJSON(portfoliosFile, &records); err != nil {
		return nil, false, err
	}
	for _, r := range records {
		if r.UserID != userID {
			continue
		}
		p := NewPortfolio(userID)
		for code, w := range r.Wallets {
			p.wallets[code] = &Wallet{Code: w.CurrencyCode, Balance: w.Balance}
		}
		return p, true, nil
	}
	return nil, false, nil
}

// SavePortfolio replaces one user's entry in the portfolios collection and
// rewrites the whole document.
func (s *Store) SavePortfolio(p *Portfolio) error {
	var records []jportfolio
	if err := s.readJSON(portfoliosFile, &records); err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r.UserID != p.UserID {
			kept = append(kept, r)
		}
	}
	wallets := make(map[string]jwallet, len(p.wallets))
	for code, w := range p.wallets {
		wallets[code] = jwallet{CurrencyCode: w.Code, Balance: w.Balance}
	}
	kept = append(kept, jportfolio{UserID: p.UserID, Wallets: wallets})
	return s.writeJSON(portfoliosFile, kept)
}

// Rates loads the rate table. A missing document is an empty table.
func (s *Store) Rates() (*RateTable, error) {
	var doc jrates
	if err := s.readJSON(ratesFile, &doc); err != nil {
		return nil, err
	}
	pairs := make(map[string]Quote, len(doc.Pairs))
	for pair, q := range doc.Pairs {
		pairs[pair] = Quote{Rate: q.Rate, UpdatedAt: q.UpdatedAt, Source: q.Source}
	}
	return NewRateTable(pairs, doc.LastRefresh), nil
}

// SaveRates merges pairs into the persisted rate document and stamps it
// with the refresh time. Existing pairs not present in the update are kept.
func (s *Store) SaveRates(pairs map[string]Quote, lastRefresh time.Time) error {
	var doc jrates
	if err := s.readJSON(ratesFile, &doc); err != nil {
		return err
	}
	if doc.Pairs == nil {
		doc.Pairs = make(map[string]jquote, len(pairs))
	}
	for pair, q := range pairs {
		doc.Pairs[pair] = jquote{Rate: q.Rate, UpdatedAt: q.UpdatedAt, Source: q.Source}
	}
	doc.LastRefresh = lastRefresh
	return s.writeJSON(ratesFile, doc)
}

// History loads the bounded rate history, oldest first.
func (s *Store) History() ([]HistoryRecord, error) {
	var records []HistoryRecord
	if err := s.readJSON(historyFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AppendHistory appends records to the history document, evicting the
// oldest entries beyond the bound.
func (s *Store) AppendHistory(records []HistoryRecord) error {
	history, err := s.History()
	if err != nil {
		return err
	}
	history = append(history, records...)
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	return s.writeJSON(historyFile, history)
}

// LoginSession returns the persisted session. ok is false when nobody is
// logged in.
func (s *Store) LoginSession() (sess Session, ok bool, err error) {
	var doc Session
	if err := s.readJSON(sessionFile, &doc); err != nil {
		return Session{}, false, err
	}
	return doc, doc.UserID != 0, nil
}

// SaveLoginSession persists the session of the freshly logged-in user.
func (s *Store) SaveLoginSession(sess Session) error {
	return s.writeJSON(sessionFile, sess)
}

// ClearLoginSession forgets the persisted session.
func (s *Store) ClearLoginSession() error {
	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// readJSON decodes the named document into v. A missing document leaves v
// untouched so the caller gets its typed zero value.
func (s *Store) readJSON(name string, v any) error {
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", name, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("format error in %s: %w", name, err)
	}
	return nil
}

// writeJSON encodes v into the named document, atomically: the content is
// written to a temporary file in the same directory then renamed into place.
func (s *Store) writeJSON(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("cannot create data directory: %w", err)
	}
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create temporary file for %s: %w", name, err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot replace %s: %w", name, err)
	}
	return nil
}
