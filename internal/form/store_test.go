package form_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/form"
)

func taskIDs(tasks []domain.TaskEntry) []int {
	ids := make([]int, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestNewStore_StartsReset(t *testing.T) {
	s := form.NewStore()
	emp, tasks := s.Snapshot()
	if emp != (domain.EmployeeContext{}) {
		t.Errorf("employee = %+v, want empty", emp)
	}
	want := []domain.TaskEntry{{ID: 1}}
	if !reflect.DeepEqual(tasks, want) {
		t.Errorf("tasks = %+v, want %+v", tasks, want)
	}
}

func TestAddTask_AssignsMaxPlusOne(t *testing.T) {
	s := form.NewStore()
	for want := 2; want <= 6; want++ {
		_, before := s.Snapshot()
		got := s.AddTask()
		_, after := s.Snapshot()
		if got.ID != want {
			t.Errorf("AddTask id = %d, want %d", got.ID, want)
		}
		if len(after) != len(before)+1 {
			t.Errorf("len = %d, want %d", len(after), len(before)+1)
		}
		if last := after[len(after)-1]; last != (domain.TaskEntry{ID: want}) {
			t.Errorf("appended %+v, want empty entry with id %d", last, want)
		}
	}
}

func TestAddTask_AfterRemovalUsesCurrentMax(t *testing.T) {
	s := form.NewStore()
	s.AddTask() // 2
	s.AddTask() // 3
	s.AddTask() // 4
	s.RemoveTask(2)
	if got := s.AddTask().ID; got != 5 {
		t.Errorf("AddTask after removing a middle entry = %d, want 5", got)
	}
	s.RemoveTask(5)
	s.RemoveTask(4)
	if got := s.AddTask().ID; got != 4 {
		t.Errorf("AddTask after removing the top entries = %d, want 4", got)
	}
}

func TestRemoveTask_LastEntryIsNoop(t *testing.T) {
	s := form.NewStore()
	if err := s.SetTaskField(1, domain.FieldDescription, "keep me"); err != nil {
		t.Fatal(err)
	}
	_, before := s.Snapshot()
	if s.RemoveTask(1) {
		t.Error("RemoveTask on a single-entry list reported removal")
	}
	_, after := s.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("list changed: %+v -> %+v", before, after)
	}
}

func TestRemoveTask_RemovesOnlyTarget(t *testing.T) {
	s := form.NewStore()
	s.AddTask()
	s.AddTask()
	s.AddTask()
	for _, id := range []int{1, 2, 3, 4} {
		if err := s.SetTaskField(id, domain.FieldDescription, string(rune('A'+id-1))); err != nil {
			t.Fatal(err)
		}
	}
	if !s.RemoveTask(3) {
		t.Fatal("RemoveTask(3) reported no-op")
	}
	_, tasks := s.Snapshot()
	want := []domain.TaskEntry{
		{ID: 1, Description: "A"},
		{ID: 2, Description: "B"},
		{ID: 4, Description: "D"},
	}
	if !reflect.DeepEqual(tasks, want) {
		t.Errorf("tasks = %+v, want %+v", tasks, want)
	}
}

func TestRemoveTask_UnknownID(t *testing.T) {
	s := form.NewStore()
	s.AddTask()
	if s.RemoveTask(42) {
		t.Error("RemoveTask(42) reported removal")
	}
	_, tasks := s.Snapshot()
	if got := taskIDs(tasks); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", got)
	}
}

func TestSetEmployeeField(t *testing.T) {
	s := form.NewStore()
	if err := s.SetEmployeeField(domain.FieldEmployeeName, "Jane"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetEmployeeField(domain.FieldDate, "2024-05-01"); err != nil {
		t.Fatal(err)
	}
	err := s.SetEmployeeField("department", "ops")
	if !errors.Is(err, domain.ErrUnknownField) {
		t.Errorf("unknown field err = %v, want ErrUnknownField", err)
	}
	emp, _ := s.Snapshot()
	want := domain.EmployeeContext{EmployeeName: "Jane", Date: "2024-05-01"}
	if emp != want {
		t.Errorf("employee = %+v, want %+v", emp, want)
	}
}

func TestSetTaskField(t *testing.T) {
	s := form.NewStore()
	s.AddTask()
	if err := s.SetTaskField(2, domain.FieldDescription, "Review"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTaskField(2, domain.FieldHoursWorked, "1.5"); err != nil {
		t.Fatal(err)
	}

	t.Run("unknown id", func(t *testing.T) {
		err := s.SetTaskField(9, domain.FieldDescription, "x")
		if !errors.Is(err, domain.ErrTaskNotFound) {
			t.Errorf("err = %v, want ErrTaskNotFound", err)
		}
	})
	t.Run("unknown field", func(t *testing.T) {
		err := s.SetTaskField(2, "owner", "x")
		if !errors.Is(err, domain.ErrUnknownField) {
			t.Errorf("err = %v, want ErrUnknownField", err)
		}
	})

	_, tasks := s.Snapshot()
	want := []domain.TaskEntry{{ID: 1}, {ID: 2, Description: "Review", HoursWorked: "1.5"}}
	if !reflect.DeepEqual(tasks, want) {
		t.Errorf("tasks = %+v, want %+v", tasks, want)
	}
}

func TestReset(t *testing.T) {
	s := form.NewStore()
	s.SetEmployeeField(domain.FieldEmployeeName, "Jane")
	s.SetEmployeeField(domain.FieldDate, "2024-05-01")
	s.AddTask()
	s.AddTask()
	s.SetTaskField(3, domain.FieldHoursWorked, "8")

	s.Reset()

	emp, tasks := s.Snapshot()
	if emp != (domain.EmployeeContext{}) {
		t.Errorf("employee = %+v, want empty", emp)
	}
	if want := []domain.TaskEntry{{ID: 1}}; !reflect.DeepEqual(tasks, want) {
		t.Errorf("tasks = %+v, want %+v", tasks, want)
	}
	if got := s.AddTask().ID; got != 2 {
		t.Errorf("AddTask after reset = %d, want 2", got)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := form.NewStore()
	_, tasks := s.Snapshot()
	tasks[0].Description = "mutated"
	_, again := s.Snapshot()
	if again[0].Description != "" {
		t.Error("mutating a snapshot changed the store")
	}
}
