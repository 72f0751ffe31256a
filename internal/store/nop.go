package store

import "github.com/amishk599/skillradar/internal/model"

// NopStore discards saved jobs. Used when database persistence is disabled.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) SaveJobs(jobs []model.Job) error  { return nil }
func (s *NopStore) LoadJobs() ([]model.Job, error)  { return nil, nil }
func (s *NopStore) Close() error                    { return nil }
