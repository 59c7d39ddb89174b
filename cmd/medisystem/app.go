package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medisystem/medisystem/internal/config"
	"github.com/medisystem/medisystem/internal/domain/appointment"
	"github.com/medisystem/medisystem/internal/domain/identity"
	"github.com/medisystem/medisystem/internal/domain/patient"
	"github.com/medisystem/medisystem/internal/domain/record"
	"github.com/medisystem/medisystem/internal/input"
	"github.com/medisystem/medisystem/internal/platform/api"
	"github.com/medisystem/medisystem/internal/platform/deeplink"
	"github.com/medisystem/medisystem/internal/platform/guard"
	"github.com/medisystem/medisystem/internal/platform/media"
	"github.com/medisystem/medisystem/internal/session"
	"github.com/medisystem/medisystem/internal/workflow"
)

// app wires the whole client together and drives it from a line-oriented
// prompt. All state transitions go through the workflow machine; the prompt
// only renders whatever screen the machine says is focused.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	out      io.Writer
	in       *bufio.Scanner
	sess     *session.Session
	prefs    *session.Preferences
	machine  *workflow.Machine
	notifier *deeplink.Notifier

	identitySvc *identity.Service
	patientSvc  *patient.Service
	recordSvc   *record.Service
	apptSvc     *appointment.Service

	roster  *patient.RosterView
	history *record.HistoryView
	agenda  *appointment.AgendaView

	// focused is the patient the detail screen is showing.
	focused *patient.Patient
}

func newApp(cfg *config.Config, logger zerolog.Logger, open func(string) error) *app {
	sess := session.New(logger)
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, logger)
	client.SetTokenSource(sess.Token)

	return assemble(cfg, logger, sess, open,
		identity.NewRepoHTTP(client),
		patient.NewRepoHTTP(client),
		record.NewRepoHTTP(client),
		appointment.NewRepoHTTP(client))
}

// assemble builds the app over the given repositories, so the prompt loop
// can be exercised against in-memory stores as well as the remote API.
func assemble(cfg *config.Config, logger zerolog.Logger, sess *session.Session, open func(string) error,
	identRepo identity.Repository, patRepo patient.Repository,
	recRepo record.Repository, apptRepo appointment.Repository) *app {
	g := guard.New()
	notifier := deeplink.NewNotifier(cfg.MessagingScheme, deeplink.OpenerFunc(open), logger)

	a := &app{
		cfg:      cfg,
		log:      logger,
		out:      os.Stdout,
		in:       bufio.NewScanner(os.Stdin),
		sess:     sess,
		prefs:    session.NewPreferences(cfg.DarkMode),
		machine:  workflow.New(sess, notifier, logger),
		notifier: notifier,
	}

	a.identitySvc = identity.NewService(identRepo, g, logger)
	a.patientSvc = patient.NewService(patRepo, g, logger)
	a.recordSvc = record.NewService(recRepo, &promptCamera{app: a}, g, logger)
	a.apptSvc = appointment.NewService(apptRepo, g, logger)

	a.roster = patient.NewRosterView(patRepo, logger)
	a.history = record.NewHistoryView(recRepo, logger)
	a.agenda = appointment.NewAgendaView(apptRepo, logger)

	a.machine.OnFocus(workflow.ScreenPatients, func(ctx context.Context) error {
		acct, ok := sess.Current()
		if !ok {
			return nil
		}
		return a.roster.Refresh(ctx, acct.ID)
	})
	a.machine.OnFocus(workflow.ScreenPatientDetail, func(ctx context.Context) error {
		if a.focused == nil {
			return nil
		}
		if err := a.history.Refresh(ctx, a.focused.ID); err != nil {
			return err
		}
		return a.agenda.Refresh(ctx, a.focused.ID)
	})

	return a
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// prompt reads one line, trimmed. ok is false on EOF.
func (a *app) prompt(label string) (string, bool) {
	fmt.Fprintf(a.out, "%s: ", label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *app) confirmYes(label string) bool {
	ans, ok := a.prompt(label + " [y/N]")
	return ok && strings.EqualFold(ans, "y")
}

func (a *app) run(ctx context.Context) error {
	a.printf("medisystem %s (%s) — type 'help' for commands", version, a.cfg.Env)
	for {
		fmt.Fprintf(a.out, "[%s]> ", a.machine.Current())
		if !a.in.Scan() {
			return nil
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		var err error
		switch cmd {
		case "help":
			a.help()
		case "quit", "exit":
			return nil
		case "login":
			err = a.cmdLogin(ctx)
		case "logout":
			a.machine.Logout()
		case "register":
			err = a.cmdRegister(ctx)
		case "whoami":
			a.cmdWhoami()
		case "profile":
			err = a.cmdProfile(ctx)
		case "dark":
			a.prefs.Toggle()
			a.printf("dark mode: %v", a.prefs.Dark())
		case "patients":
			err = a.machine.Replace(ctx, workflow.ScreenPatients)
			if err == nil {
				a.renderRoster(a.roster.Patients())
			}
		case "find":
			a.renderRoster(a.roster.Filter(strings.Join(args, " ")))
		case "open":
			err = a.cmdOpen(ctx, args)
		case "add-patient":
			err = a.cmdSavePatient(ctx, nil)
		case "edit-patient":
			err = a.cmdEditPatient(ctx)
		case "del-patient":
			err = a.cmdDeletePatient(ctx)
		case "add-record":
			err = a.cmdSaveRecord(ctx, nil)
		case "edit-record":
			err = a.cmdEditRecord(ctx, args)
		case "del-record":
			err = a.cmdDeleteRecord(ctx, args)
		case "add-appt":
			err = a.cmdSaveAppointment(ctx, nil)
		case "edit-appt":
			err = a.cmdEditAppointment(ctx, args)
		case "del-appt":
			err = a.cmdDeleteAppointment(ctx, args)
		case "message":
			err = a.cmdMessage()
		case "back":
			err = a.machine.Pop(ctx)
			a.render()
		default:
			a.printf("unknown command %q — type 'help'", cmd)
		}
		if err != nil {
			a.printf("error: %v", err)
		}
	}
}

func (a *app) help() {
	a.printf(`commands:
  login | logout | register | whoami | profile | dark
  patients | find <query> | open <n> | back
  add-patient | edit-patient | del-patient
  add-record | edit-record <n> | del-record <n>
  add-appt | edit-appt <n> | del-appt <n>
  message
  quit`)
}

func (a *app) cmdLogin(ctx context.Context) error {
	email, ok := a.prompt("email")
	if !ok {
		return nil
	}
	password, ok := a.prompt("password")
	if !ok {
		return nil
	}
	acct, err := a.identitySvc.Login(ctx, identity.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	a.sess.Login(*acct)
	a.printf("welcome, %s", acct.FullName)
	return a.machine.Replace(ctx, workflow.ScreenPatients)
}

func (a *app) cmdRegister(ctx context.Context) error {
	if !a.sess.IsAdmin() {
		return fmt.Errorf("register: admin role required")
	}
	if err := a.machine.Push(ctx, workflow.ScreenRegisterDoctor); err != nil {
		return err
	}
	defer a.machine.Pop(ctx)

	name, ok := a.prompt("full name")
	if !ok {
		return nil
	}
	email, ok := a.prompt("email")
	if !ok {
		return nil
	}
	password, ok := a.prompt("password")
	if !ok {
		return nil
	}
	if err := a.identitySvc.RegisterDoctor(ctx, identity.DoctorRegistration{
		FullName: name, Email: email, Password: password,
	}); err != nil {
		return err
	}
	a.printf("doctor %s registered", name)
	return nil
}

func (a *app) cmdWhoami() {
	acct, ok := a.sess.Current()
	if !ok {
		a.printf("not logged in")
		return
	}
	a.printf("%s <%s> role=%s", acct.FullName, acct.Email, acct.Role)
}

// cmdProfile opens the account screen: identity, theme, and the actions
// available from it.
func (a *app) cmdProfile(ctx context.Context) error {
	if err := a.machine.Push(ctx, workflow.ScreenProfile); err != nil {
		return err
	}
	a.cmdWhoami()
	a.printf("dark mode: %v", a.prefs.Dark())
	a.printf("'dark' toggles the theme, 'register' adds a doctor (admin only), 'logout' ends the session, 'back' returns")
	return nil
}

func (a *app) cmdOpen(ctx context.Context, args []string) error {
	p, err := a.pickPatient(args)
	if err != nil {
		return err
	}
	a.focused = p
	if err := a.machine.Push(ctx, workflow.ScreenPatientDetail); err != nil {
		a.focused = nil
		return err
	}
	a.renderDetail()
	return nil
}

func (a *app) pickPatient(args []string) (*patient.Patient, error) {
	list := a.roster.Patients()
	if len(args) != 1 {
		return nil, fmt.Errorf("usage: open <n> (1-%d)", len(list))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(list) {
		return nil, fmt.Errorf("no patient #%s on the roster", args[0])
	}
	p := list[n-1]
	return &p, nil
}

// cmdSavePatient drives the save form for a new patient, or for existing
// when one is passed in. Empty answers keep the shown value.
func (a *app) cmdSavePatient(ctx context.Context, existing *patient.Patient) error {
	acct, ok := a.sess.Current()
	if !ok {
		return workflow.ErrNotAuthenticated
	}
	if err := a.machine.Push(ctx, workflow.ScreenSavePatient); err != nil {
		return err
	}
	defer a.machine.Pop(ctx)

	p := patient.Patient{OwnerID: acct.ID}
	if existing != nil {
		p = *existing
	}
	if v, ok := a.prompt("name [" + p.Name + "]"); ok && v != "" {
		p.Name = v
	}
	if v, ok := a.prompt("birth date YYYY-MM-DD [" + p.BirthDate + "]"); ok && v != "" {
		p.BirthDate = input.MaskDate(v)
	}
	if err := input.ValidateDate(p.BirthDate); err != nil {
		return err
	}
	if v, ok := a.prompt("contact number [" + p.ContactInfo + "]"); ok && v != "" {
		p.ContactInfo = v
	}

	saved, err := a.patientSvc.Save(ctx, p)
	if err != nil {
		return err
	}
	a.printf("saved patient %s", saved.Name)
	return nil
}

func (a *app) cmdEditPatient(ctx context.Context) error {
	if a.focused == nil {
		return fmt.Errorf("open a patient first")
	}
	return a.cmdSavePatient(ctx, a.focused)
}

func (a *app) cmdDeletePatient(ctx context.Context) error {
	if a.focused == nil {
		return fmt.Errorf("open a patient first")
	}
	id, name := a.focused.ID, a.focused.Name
	c := a.machine.Confirm(func(ctx context.Context) error {
		return a.patientSvc.Delete(ctx, id)
	})
	if !a.confirmYes("delete patient " + name + "?") {
		c.Decline()
		return nil
	}
	if err := c.Approve(ctx); err != nil {
		return err
	}
	a.focused = nil
	a.printf("patient %s deleted", name)
	return a.machine.Pop(ctx)
}

// cmdSaveRecord drives the record form for a new entry, or for existing when
// one is passed in. Empty answers keep the shown value; an existing photo
// can be removed instead of replaced.
func (a *app) cmdSaveRecord(ctx context.Context, existing *record.ClinicalRecord) error {
	if a.focused == nil {
		return fmt.Errorf("open a patient first")
	}
	if err := a.machine.Push(ctx, workflow.ScreenSaveRecord); err != nil {
		return err
	}
	defer a.machine.Pop(ctx)

	rec := record.ClinicalRecord{PatientID: a.focused.ID}
	if existing != nil {
		rec = *existing
	}
	if v, ok := a.prompt("notes [" + rec.Notes + "]"); ok && v != "" {
		rec.Notes = v
	}
	raw, _ := a.prompt(fmt.Sprintf("weight (kg) [%.1f]", rec.WeightKg))
	if raw != "" {
		rec.WeightKg = input.ParseWeight(raw)
	} else if existing == nil {
		return fmt.Errorf("weight: required")
	}
	if v, ok := a.prompt("blood pressure [" + rec.BloodPressure + "]"); ok && v != "" {
		rec.BloodPressure = v
	}
	if v, ok := a.prompt("treatment (optional)"); ok && v != "" {
		rec.Treatment = &v
	}
	if rec.PhotoURL != nil {
		if a.confirmYes("remove photo?") {
			rec.PhotoURL = nil
		}
	} else if a.confirmYes("attach photo?") {
		rec.PhotoURL = a.recordSvc.CapturePhoto(ctx)
	}

	saved, err := a.recordSvc.Save(ctx, rec)
	if err != nil {
		return err
	}
	a.printf("record %s saved", saved.ID)
	return nil
}

func (a *app) cmdEditRecord(ctx context.Context, args []string) error {
	list := a.history.Records()
	n, err := pickIndex(args, len(list))
	if err != nil {
		return err
	}
	rec := list[n-1]
	return a.cmdSaveRecord(ctx, &rec)
}

func (a *app) cmdDeleteRecord(ctx context.Context, args []string) error {
	list := a.history.Records()
	n, err := pickIndex(args, len(list))
	if err != nil {
		return err
	}
	rec := list[n-1]
	c := a.machine.Confirm(func(ctx context.Context) error {
		return a.recordSvc.Delete(ctx, rec.ID)
	})
	if !a.confirmYes("delete this record?") {
		c.Decline()
		return nil
	}
	if err := c.Approve(ctx); err != nil {
		return err
	}
	a.printf("record deleted")
	return a.history.Refresh(ctx, rec.PatientID)
}

// cmdSaveAppointment drives the appointment form for a new visit, or for
// existing when one is passed in; existing date-times are split back into
// the two field values to prefill the form.
func (a *app) cmdSaveAppointment(ctx context.Context, existing *appointment.Appointment) error {
	if a.focused == nil {
		return fmt.Errorf("open a patient first")
	}
	acct, ok := a.sess.Current()
	if !ok {
		return workflow.ErrNotAuthenticated
	}
	if err := a.machine.Push(ctx, workflow.ScreenSaveAppointment); err != nil {
		return err
	}

	appt := appointment.Appointment{PatientID: a.focused.ID}
	var date, tm string
	if existing != nil {
		appt = *existing
		date, tm = input.SplitDateTime(appt.When)
	}
	if v, ok := a.prompt("date YYYY-MM-DD [" + date + "]"); ok && v != "" {
		date = input.MaskDate(v)
	}
	if err := input.ValidateDate(date); err != nil {
		a.machine.Pop(ctx)
		return err
	}
	if v, ok := a.prompt("time HH:MM [" + tm + "]"); ok && v != "" {
		tm = input.MaskTime(v)
	}
	if err := input.ValidateTime(tm); err != nil {
		a.machine.Pop(ctx)
		return err
	}
	if v, ok := a.prompt("reason [" + appt.Reason + "]"); ok && v != "" {
		appt.Reason = v
	}
	appt.When = input.CombineDateTime(date, tm)

	saved, err := a.apptSvc.Save(ctx, appt, acct)
	if err != nil {
		a.machine.Pop(ctx)
		return err
	}
	a.printf("appointment saved for %s at %s", formatDate(date), tm)

	offer := a.machine.OfferReminder(a.focused.ContactInfo, appointment.ReminderMessage(a.focused.Name, *saved))
	if a.confirmYes("send reminder via " + a.cfg.MessagingScheme + "?") {
		if err := offer.Send(ctx); err != nil {
			a.printf("reminder not sent: %v", err)
		}
		return nil
	}
	return offer.Decline(ctx)
}

func (a *app) cmdEditAppointment(ctx context.Context, args []string) error {
	list := a.agenda.Appointments()
	n, err := pickIndex(args, len(list))
	if err != nil {
		return err
	}
	appt := list[n-1]
	return a.cmdSaveAppointment(ctx, &appt)
}

func (a *app) cmdDeleteAppointment(ctx context.Context, args []string) error {
	list := a.agenda.Appointments()
	n, err := pickIndex(args, len(list))
	if err != nil {
		return err
	}
	appt := list[n-1]
	c := a.machine.Confirm(func(ctx context.Context) error {
		return a.apptSvc.Delete(ctx, appt.ID)
	})
	if !a.confirmYes("delete this appointment?") {
		c.Decline()
		return nil
	}
	if err := c.Approve(ctx); err != nil {
		return err
	}
	a.printf("appointment deleted")
	return a.agenda.Refresh(ctx, appt.PatientID)
}

// cmdMessage sends the focused patient an ad-hoc greeting through the
// messaging deep link, independent of any appointment.
func (a *app) cmdMessage() error {
	if a.focused == nil {
		return fmt.Errorf("open a patient first")
	}
	if err := a.notifier.Send(a.focused.ContactInfo, greetingMessage(a.focused.Name)); err != nil {
		return err
	}
	a.printf("message handed to %s", a.cfg.MessagingScheme)
	return nil
}

func greetingMessage(name string) string {
	return fmt.Sprintf("Hola %s.", name)
}

func pickIndex(args []string, max int) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: <command> <n> (1-%d)", max)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > max {
		return 0, fmt.Errorf("no entry #%s", args[0])
	}
	return n, nil
}

func (a *app) render() {
	switch a.machine.Current() {
	case workflow.ScreenPatients:
		a.renderRoster(a.roster.Patients())
	case workflow.ScreenPatientDetail:
		a.renderDetail()
	}
}

func (a *app) renderRoster(list []patient.Patient) {
	if len(list) == 0 {
		a.printf("no patients")
		return
	}
	for i, p := range list {
		a.printf("%2d. %-30s born %s  %s", i+1, p.Name, formatDate(p.BirthDate), p.ContactInfo)
	}
}

func (a *app) renderDetail() {
	p := a.focused
	if p == nil {
		return
	}
	a.printf("== %s — born %s — %s", p.Name, formatDate(p.BirthDate), p.ContactInfo)
	a.printf("-- history (%d)", len(a.history.Records()))
	for i, r := range a.history.Records() {
		date, _ := input.SplitDateTime(r.RecordDate)
		a.printf("%2d. %s  %.1f kg  BP %s  %s", i+1, formatDate(date), r.WeightKg, r.BloodPressure, r.Notes)
	}
	a.printf("-- appointments (%d)", len(a.agenda.Appointments()))
	for i, appt := range a.agenda.Appointments() {
		date, tm := input.SplitDateTime(appt.When)
		a.printf("%2d. %s %s  %s (%s)", i+1, formatDate(date), tm, appt.Reason, appt.DoctorName)
	}
}

// formatDate renders a wire date for display, e.g. "15 MAR 2024". Anything
// unparseable is shown verbatim.
func formatDate(wire string) string {
	t, err := time.Parse("2006-01-02", wire)
	if err != nil {
		return wire
	}
	return strings.ToUpper(t.Format("02 Jan 2006"))
}

// promptCamera stands in for the device camera: permission is granted by
// answering the prompt, and "capturing" is pointing at an image path.
type promptCamera struct {
	app *app
}

func (c *promptCamera) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

func (c *promptCamera) Capture(ctx context.Context) (string, error) {
	path, ok := c.app.prompt("photo path")
	if !ok || path == "" {
		return "", media.ErrCanceled
	}
	return path, nil
}
