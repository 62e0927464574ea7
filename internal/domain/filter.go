package domain

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SQL returns the direction keyword, defaulting to DESC for anything
// unrecognized so listings never become nondeterministic.
func (d SortDirection) SQL() string {
	if d == SortAsc {
		return "ASC"
	}
	return "DESC"
}

type ApplicationSort string

const (
	ApplicationSortCreated ApplicationSort = "created_at"
	ApplicationSortStatus  ApplicationSort = "status"
)

type JobSort string

const (
	JobSortCreated JobSort = "created_at"
	JobSortRank    JobSort = "rank"
)

// ApplicationFilter scopes a listing. Limit is always bounded by the service
// before it reaches the repository.
type ApplicationFilter struct {
	Status    *Status
	Country   *string
	Sort      ApplicationSort
	Direction SortDirection
	Limit     int
	Offset    int
}

type JobFilter struct {
	Status    *Status
	Country   *string
	Sort      JobSort
	Direction SortDirection
	Limit     int
	Offset    int
}
