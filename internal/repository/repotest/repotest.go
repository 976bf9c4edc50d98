// Package repotest is a conformance suite for repository.Store
// implementations. Both backends run the same suite, which is what
// keeps their externally visible behaviour identical: ordering,
// Conflict and NotFound semantics, ownership scoping, and the cascade
// on user delete.
//
// It is a normal (non-test) package so the backend test files can
// import it, in the same spirit as net/http/httptest.
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
	"github.com/sakif/travelvault/internal/repository"
)

// Run executes the conformance suite. open must return a fresh, empty
// store per call; cleanup is the caller's job (t.Cleanup in open).
func Run(t *testing.T, open func(t *testing.T) repository.Store) {
	t.Run("Users", func(t *testing.T) { testUsers(t, open) })
	t.Run("PersonalInfo", func(t *testing.T) { testPersonalInfo(t, open) })
	t.Run("TravelHistory", func(t *testing.T) { testTravelHistory(t, open) })
	t.Run("Flights", func(t *testing.T) { testFlights(t, open) })
	t.Run("Employers", func(t *testing.T) { testEmployers(t, open) })
	t.Run("Education", func(t *testing.T) { testEducation(t, open) })
	t.Run("Addresses", func(t *testing.T) { testAddresses(t, open) })
	t.Run("CascadeDelete", func(t *testing.T) { testCascadeDelete(t, open) })
}

func newUser(t *testing.T, store repository.Store, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	if err := store.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	return u
}

func strptr(s string) *string { return &s }

func date(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("parsing date %q: %v", s, err)
	}
	return d
}

func dateptr(t *testing.T, s string) *model.Date {
	t.Helper()
	d := date(t, s)
	return &d
}

func testUsers(t *testing.T, open func(t *testing.T) repository.Store) {
	t.Run("create assigns identity", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		if u.ID == "" {
			t.Error("Create() did not set user.ID")
		}
		if u.CreatedAt.IsZero() {
			t.Error("Create() did not set user.CreatedAt")
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		store := open(t)
		newUser(t, store, "alice")

		err := store.Users().Create(context.Background(), &model.User{
			Username:     "alice",
			Email:        "other@example.com",
			PasswordHash: "x",
		})
		if !errors.Is(err, apperror.ErrConflict) {
			t.Errorf("Create() error = %v, want ErrConflict", err)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		store := open(t)
		newUser(t, store, "alice")

		err := store.Users().Create(context.Background(), &model.User{
			Username:     "bob",
			Email:        "alice@example.com",
			PasswordHash: "x",
		})
		if !errors.Is(err, apperror.ErrConflict) {
			t.Errorf("Create() error = %v, want ErrConflict", err)
		}
	})

	t.Run("lookups", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		byID, err := store.Users().GetByID(context.Background(), u.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if byID.Username != "alice" {
			t.Errorf("GetByID() username = %q, want alice", byID.Username)
		}

		byEmail, err := store.Users().GetByEmail(context.Background(), "alice@example.com")
		if err != nil {
			t.Fatalf("GetByEmail() error = %v", err)
		}
		if byEmail.ID != u.ID {
			t.Errorf("GetByEmail() id = %q, want %q", byEmail.ID, u.ID)
		}

		byName, err := store.Users().GetByUsername(context.Background(), "alice")
		if err != nil {
			t.Fatalf("GetByUsername() error = %v", err)
		}
		if byName.ID != u.ID {
			t.Errorf("GetByUsername() id = %q, want %q", byName.ID, u.ID)
		}
	})

	t.Run("missing user is not found", func(t *testing.T) {
		store := open(t)

		_, err := store.Users().GetByID(context.Background(), "no-such-id")
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("GetByID() error = %v, want ErrNotFound", err)
		}
		_, err = store.Users().GetByEmail(context.Background(), "ghost@example.com")
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("GetByEmail() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		deleted, err := store.Users().Delete(context.Background(), u.ID)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !deleted {
			t.Error("Delete() = false, want true")
		}

		deleted, err = store.Users().Delete(context.Background(), u.ID)
		if err != nil {
			t.Fatalf("Delete() second call error = %v", err)
		}
		if deleted {
			t.Error("Delete() second call = true, want false")
		}
	})
}

func testPersonalInfo(t *testing.T, open func(t *testing.T) repository.Store) {
	t.Run("absent record is nil without error", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		info, err := store.PersonalInfo().Get(context.Background(), u.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if info != nil {
			t.Errorf("Get() = %+v, want nil", info)
		}
	})

	t.Run("create and get", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		info := &model.PersonalInfo{
			FullName:       strptr("Alice Rahman"),
			PassportNumber: strptr("P1234567"),
			DOB:            dateptr(t, "1990-04-12"),
		}
		if err := store.PersonalInfo().Create(context.Background(), u.ID, info); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if info.ID == "" {
			t.Error("Create() did not set info.ID")
		}
		if info.UserID != u.ID {
			t.Errorf("Create() user_id = %q, want %q", info.UserID, u.ID)
		}

		got, err := store.PersonalInfo().Get(context.Background(), u.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got == nil || got.FullName == nil || *got.FullName != "Alice Rahman" {
			t.Errorf("Get() = %+v, want Alice Rahman", got)
		}
	})

	t.Run("second create conflicts", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		first := &model.PersonalInfo{FullName: strptr("Alice Rahman")}
		if err := store.PersonalInfo().Create(context.Background(), u.ID, first); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		err := store.PersonalInfo().Create(context.Background(), u.ID, &model.PersonalInfo{FullName: strptr("Alice Again")})
		if !errors.Is(err, apperror.ErrConflict) {
			t.Errorf("Create() error = %v, want ErrConflict", err)
		}
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		info := &model.PersonalInfo{
			FullName:       strptr("Alice Rahman"),
			PassportNumber: strptr("P1234567"),
		}
		if err := store.PersonalInfo().Create(context.Background(), u.ID, info); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		updated, err := store.PersonalInfo().Update(context.Background(), info.ID, u.ID,
			model.PersonalInfoPatch{FullName: strptr("Alice R. Chowdhury")})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.FullName == nil || *updated.FullName != "Alice R. Chowdhury" {
			t.Errorf("Update() full_name = %v, want Alice R. Chowdhury", updated.FullName)
		}
		if updated.PassportNumber == nil || *updated.PassportNumber != "P1234567" {
			t.Errorf("Update() passport = %v, want unchanged P1234567", updated.PassportNumber)
		}
	})

	t.Run("another user's record is not found", func(t *testing.T) {
		store := open(t)
		alice := newUser(t, store, "alice")
		bob := newUser(t, store, "bob")

		info := &model.PersonalInfo{FullName: strptr("Alice Rahman")}
		if err := store.PersonalInfo().Create(context.Background(), alice.ID, info); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		_, err := store.PersonalInfo().Update(context.Background(), info.ID, bob.ID,
			model.PersonalInfoPatch{FullName: strptr("Mallory")})
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("Update() error = %v, want ErrNotFound", err)
		}

		deleted, err := store.PersonalInfo().Delete(context.Background(), info.ID, bob.ID)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if deleted {
			t.Error("Delete() across users = true, want false")
		}
	})
}

func testTravelHistory(t *testing.T, open func(t *testing.T) repository.Store) {
	t.Run("empty list is non-nil", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		entries, err := store.TravelHistory().List(context.Background(), u.ID)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if entries == nil {
			t.Error("List() = nil, want empty slice")
		}
		if len(entries) != 0 {
			t.Errorf("List() length = %d, want 0", len(entries))
		}
	})

	t.Run("lists most recent first", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		for _, e := range []model.TravelHistory{
			{Date: date(t, "2023-06-10"), Destination: "Lisbon"},
			{Date: date(t, "2024-11-02"), Destination: "Tokyo"},
			{Date: date(t, "2022-01-15"), Destination: "Dhaka"},
		} {
			entry := e
			if err := store.TravelHistory().Create(context.Background(), u.ID, &entry); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		}

		entries, err := store.TravelHistory().List(context.Background(), u.ID)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		want := []string{"Tokyo", "Lisbon", "Dhaka"}
		if len(entries) != len(want) {
			t.Fatalf("List() length = %d, want %d", len(entries), len(want))
		}
		for i, dest := range want {
			if entries[i].Destination != dest {
				t.Errorf("List()[%d] = %q, want %q", i, entries[i].Destination, dest)
			}
		}
	})

	t.Run("equal dates break on newest ID first", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		// Same calendar date; the later insert carries the larger xid
		// and must list first in both backends.
		for _, dest := range []string{"Paris", "Rome", "Madrid"} {
			entry := &model.TravelHistory{Date: date(t, "2024-11-02"), Destination: dest}
			if err := store.TravelHistory().Create(context.Background(), u.ID, entry); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		}

		entries, err := store.TravelHistory().List(context.Background(), u.ID)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		want := []string{"Madrid", "Rome", "Paris"}
		if len(entries) != len(want) {
			t.Fatalf("List() length = %d, want %d", len(entries), len(want))
		}
		for i, dest := range want {
			if entries[i].Destination != dest {
				t.Errorf("List()[%d] = %q, want %q", i, entries[i].Destination, dest)
			}
		}
	})

	t.Run("list is scoped to the user", func(t *testing.T) {
		store := open(t)
		alice := newUser(t, store, "alice")
		bob := newUser(t, store, "bob")

		entry := &model.TravelHistory{Date: date(t, "2024-11-02"), Destination: "Tokyo"}
		if err := store.TravelHistory().Create(context.Background(), alice.ID, entry); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		entries, err := store.TravelHistory().List(context.Background(), bob.ID)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("List() for other user length = %d, want 0", len(entries))
		}
	})

	t.Run("partial update", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		entry := &model.TravelHistory{
			Date:        date(t, "2024-11-02"),
			Destination: "Tokyo",
			Notes:       strptr("cherry blossoms"),
		}
		if err := store.TravelHistory().Create(context.Background(), u.ID, entry); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		updated, err := store.TravelHistory().Update(context.Background(), entry.ID, u.ID,
			model.TravelHistoryPatch{Destination: strptr("Kyoto")})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Destination != "Kyoto" {
			t.Errorf("Update() destination = %q, want Kyoto", updated.Destination)
		}
		if updated.Notes == nil || *updated.Notes != "cherry blossoms" {
			t.Errorf("Update() notes = %v, want unchanged", updated.Notes)
		}
		if updated.Date.String() != "2024-11-02" {
			t.Errorf("Update() date = %s, want unchanged 2024-11-02", updated.Date)
		}
	})

	t.Run("cross-user update and delete are not found", func(t *testing.T) {
		store := open(t)
		alice := newUser(t, store, "alice")
		bob := newUser(t, store, "bob")

		entry := &model.TravelHistory{Date: date(t, "2024-11-02"), Destination: "Tokyo"}
		if err := store.TravelHistory().Create(context.Background(), alice.ID, entry); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		_, err := store.TravelHistory().Update(context.Background(), entry.ID, bob.ID,
			model.TravelHistoryPatch{Destination: strptr("Osaka")})
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("Update() error = %v, want ErrNotFound", err)
		}

		deleted, err := store.TravelHistory().Delete(context.Background(), entry.ID, bob.ID)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if deleted {
			t.Error("Delete() across users = true, want false")
		}

		// Alice's entry must be untouched.
		entries, err := store.TravelHistory().List(context.Background(), alice.ID)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(entries) != 1 || entries[0].Destination != "Tokyo" {
			t.Errorf("List() = %+v, want the original Tokyo entry", entries)
		}
	})
}

func testFlights(t *testing.T, open func(t *testing.T) repository.Store) {
	t.Run("orders by departure with missing times last", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		early := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
		late := time.Date(2024, 9, 15, 22, 30, 0, 0, time.UTC)

		for _, f := range []model.Flight{
			{FlightNumber: "BG002", Airline: "Biman", DepartureAirport: "DAC", ArrivalAirport: "LHR", DepartureTime: &early},
			{FlightNumber: "EK585", Airline: "Emirates", DepartureAirport: "DXB", ArrivalAirport: "DAC"},
			{FlightNumber: "QR639", Airline: "Qatar Airways", DepartureAirport: "DOH", ArrivalAirport: "DAC", DepartureTime: &late},
		} {
			flight := f
			if err := store.Flights().Create(context.Background(), u.ID, &flight); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		}

		flights, err := store.Flights().List(context.Background(), u.ID)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		want := []string{"QR639", "BG002", "EK585"}
		if len(flights) != len(want) {
			t.Fatalf("List() length = %d, want %d", len(flights), len(want))
		}
		for i, num := range want {
			if flights[i].FlightNumber != num {
				t.Errorf("List()[%d] = %q, want %q", i, flights[i].FlightNumber, num)
			}
		}
	})

	t.Run("update preserves unset fields", func(t *testing.T) {
		store := open(t)
		u := newUser(t, store, "alice")

		dep := time.Date(2024, 9, 15, 22, 30, 0, 0, time.UTC)
		flight := &model.Flight{
			FlightNumber:     "QR639",
			Airline:          "Qatar Airways",
			DepartureAirport: "DOH",
			ArrivalAirport:   "DAC",
			DepartureTime:    &dep,
			Gate:             strptr("B12"),
		}
		if err := store.Flights().Create(context.Background(), u.ID, flight); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		updated, err := store.Flights().Update(context.Background(), flight.ID, u.ID,
			model.FlightPatch{Status: strptr("delayed")})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Status == nil || *updated.Status != "delayed" {
			t.Errorf("Update() status = %v, want delayed", updated.Status)
		}
		if updated.Gate == nil || *updated.Gate != "B12" {
			t.Errorf("Update() gate = %v, want unchanged B12", updated.Gate)
		}
		if updated.DepartureTime == nil || !updated.DepartureTime.Equal(dep) {
			t.Errorf("Update() departure_time = %v, want unchanged %v", updated.DepartureTime, dep)
		}
	})

	t.Run("cross-user access is not found", func(t *testing.T) {
		store := open(t)
		alice := newUser(t, store, "alice")
		bob := newUser(t, store, "bob")

		flight := &model.Flight{FlightNumber: "QR639", Airline: "Qatar Airways", DepartureAirport: "DOH", ArrivalAirport: "DAC"}
		if err := store.Flights().Create(context.Background(), alice.ID, flight); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		_, err := store.Flights().Update(context.Background(), flight.ID, bob.ID,
			model.FlightPatch{Status: strptr("cancelled")})
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("Update() error = %v, want ErrNotFound", err)
		}
	})
}

func testEmployers(t *testing.T, open func(t *testing.T) repository.Store) {
	store := open(t)
	u := newUser(t, store, "alice")

	for _, e := range []model.Employer{
		{CompanyName: "Initech", Role: "Engineer", StartDate: date(t, "2019-02-01"), EndDate: dateptr(t, "2021-07-31")},
		{CompanyName: "Globex", Role: "Senior Engineer", StartDate: date(t, "2021-08-16")},
	} {
		employer := e
		if err := store.Employers().Create(context.Background(), u.ID, &employer); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	employers, err := store.Employers().List(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(employers) != 2 {
		t.Fatalf("List() length = %d, want 2", len(employers))
	}
	if employers[0].CompanyName != "Globex" || employers[1].CompanyName != "Initech" {
		t.Errorf("List() order = [%s, %s], want [Globex, Initech]",
			employers[0].CompanyName, employers[1].CompanyName)
	}
	if employers[0].EndDate != nil {
		t.Errorf("List()[0].EndDate = %v, want nil for a current job", employers[0].EndDate)
	}

	updated, err := store.Employers().Update(context.Background(), employers[0].ID, u.ID,
		model.EmployerPatch{Role: strptr("Staff Engineer")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Role != "Staff Engineer" {
		t.Errorf("Update() role = %q, want Staff Engineer", updated.Role)
	}
	if updated.CompanyName != "Globex" {
		t.Errorf("Update() company = %q, want unchanged Globex", updated.CompanyName)
	}

	deleted, err := store.Employers().Delete(context.Background(), employers[1].ID, u.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted {
		t.Error("Delete() = false, want true")
	}
}

func testEducation(t *testing.T, open func(t *testing.T) repository.Store) {
	store := open(t)
	u := newUser(t, store, "alice")

	for _, e := range []model.Education{
		{Institution: "BUET", Degree: "BSc CSE", StartDate: date(t, "2012-01-15"), EndDate: dateptr(t, "2016-09-30")},
		{Institution: "TU Munich", Degree: "MSc Informatics", StartDate: date(t, "2017-10-01"), EndDate: dateptr(t, "2019-11-15")},
	} {
		education := e
		if err := store.Education().Create(context.Background(), u.ID, &education); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	entries, err := store.Education().List(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() length = %d, want 2", len(entries))
	}
	if entries[0].Institution != "TU Munich" || entries[1].Institution != "BUET" {
		t.Errorf("List() order = [%s, %s], want [TU Munich, BUET]",
			entries[0].Institution, entries[1].Institution)
	}

	_, err = store.Education().Update(context.Background(), "no-such-id", u.ID,
		model.EducationPatch{Degree: strptr("PhD")})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func testAddresses(t *testing.T, open func(t *testing.T) repository.Store) {
	store := open(t)
	u := newUser(t, store, "alice")

	for _, a := range []model.Address{
		{Address: "12 Green Road", City: "Dhaka", Country: "Bangladesh", FromDate: date(t, "2010-03-01"), ToDate: dateptr(t, "2017-09-30")},
		{Address: "Arcisstrasse 21", City: "Munich", State: strptr("Bavaria"), Country: "Germany", FromDate: date(t, "2017-10-01")},
	} {
		address := a
		if err := store.Addresses().Create(context.Background(), u.ID, &address); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	addresses, err := store.Addresses().List(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(addresses) != 2 {
		t.Fatalf("List() length = %d, want 2", len(addresses))
	}
	if addresses[0].City != "Munich" || addresses[1].City != "Dhaka" {
		t.Errorf("List() order = [%s, %s], want [Munich, Dhaka]",
			addresses[0].City, addresses[1].City)
	}
	if addresses[1].State != nil {
		t.Errorf("List()[1].State = %v, want nil", addresses[1].State)
	}

	updated, err := store.Addresses().Update(context.Background(), addresses[0].ID, u.ID,
		model.AddressPatch{ToDate: dateptr(t, "2024-06-30")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ToDate == nil || updated.ToDate.String() != "2024-06-30" {
		t.Errorf("Update() to_date = %v, want 2024-06-30", updated.ToDate)
	}
}

func testCascadeDelete(t *testing.T, open func(t *testing.T) repository.Store) {
	store := open(t)
	alice := newUser(t, store, "alice")
	bob := newUser(t, store, "bob")

	ctx := context.Background()
	if err := store.PersonalInfo().Create(ctx, alice.ID, &model.PersonalInfo{FullName: strptr("Alice Rahman")}); err != nil {
		t.Fatalf("creating personal info: %v", err)
	}
	if err := store.TravelHistory().Create(ctx, alice.ID, &model.TravelHistory{Date: date(t, "2024-11-02"), Destination: "Tokyo"}); err != nil {
		t.Fatalf("creating travel entry: %v", err)
	}
	if err := store.Flights().Create(ctx, alice.ID, &model.Flight{FlightNumber: "QR639", Airline: "Qatar Airways", DepartureAirport: "DOH", ArrivalAirport: "DAC"}); err != nil {
		t.Fatalf("creating flight: %v", err)
	}
	if err := store.TravelHistory().Create(ctx, bob.ID, &model.TravelHistory{Date: date(t, "2023-05-20"), Destination: "Lisbon"}); err != nil {
		t.Fatalf("creating bob's travel entry: %v", err)
	}

	deleted, err := store.Users().Delete(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted {
		t.Fatal("Delete() = false, want true")
	}

	info, err := store.PersonalInfo().Get(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Get() after cascade error = %v", err)
	}
	if info != nil {
		t.Errorf("personal info survived user delete: %+v", info)
	}
	entries, err := store.TravelHistory().List(ctx, alice.ID)
	if err != nil {
		t.Fatalf("List() after cascade error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("travel entries survived user delete: %+v", entries)
	}
	flights, err := store.Flights().List(ctx, alice.ID)
	if err != nil {
		t.Fatalf("List() after cascade error = %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("flights survived user delete: %+v", flights)
	}

	// Bob's data is untouched.
	bobEntries, err := store.TravelHistory().List(ctx, bob.ID)
	if err != nil {
		t.Fatalf("List() for bob error = %v", err)
	}
	if len(bobEntries) != 1 {
		t.Errorf("bob's travel entries = %d, want 1", len(bobEntries))
	}
}
