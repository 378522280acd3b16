package store

import (
	"gorm.io/gorm"
)

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByID
	SortByCreatedTime
	SortByUpdatedTime
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type CandidateQueryFilter BaseQuerier

func NewCandidateQueryFilter() *CandidateQueryFilter {
	return &CandidateQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *CandidateQueryFilter) ByJobID(jobID string) *CandidateQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("job_id = ?", jobID)
	})
	return qf
}

func (qf *CandidateQueryFilter) ByStatus(status string) *CandidateQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return qf
}

func (qf *CandidateQueryFilter) ByEmail(email string) *CandidateQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("email = ?", email)
	})
	return qf
}

type CandidateQueryOptions BaseQuerier

func NewCandidateQueryOptions() *CandidateQueryOptions {
	return &CandidateQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *CandidateQueryOptions) WithSortOrder(sort SortOrder) *CandidateQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByID:
			return tx.Order("id")
		case SortByUpdatedTime:
			return tx.Order("updated_at")
		case SortByCreatedTime:
			return tx.Order("created_at")
		default:
			return tx
		}
	})
	return o
}

type JobQueryFilter BaseQuerier

func NewJobQueryFilter() *JobQueryFilter {
	return &JobQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *JobQueryFilter) ByActive(active bool) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("is_active = ?", active)
	})
	return qf
}

type TalentQueryFilter BaseQuerier

func NewTalentQueryFilter() *TalentQueryFilter {
	return &TalentQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *TalentQueryFilter) ByActive(active bool) *TalentQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("is_active = ?", active)
	})
	return qf
}

func (qf *TalentQueryFilter) ByEmail(email string) *TalentQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("email = ?", email)
	})
	return qf
}
