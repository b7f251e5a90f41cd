package entities

// StatItem - одна группа агрегата (название группы и количество заявок).
type StatItem struct {
	Name  string
	Count int64
}
