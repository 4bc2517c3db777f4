package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aulago/aulago/internal/app"
	"github.com/aulago/aulago/internal/config"
	"github.com/aulago/aulago/internal/domain"
	"github.com/aulago/aulago/internal/listview"
	"github.com/aulago/aulago/internal/module/feedback"
	"github.com/aulago/aulago/internal/module/profile"
	"github.com/aulago/aulago/internal/module/task"
)

const usage = `usage: aula [-config path] <command> [options]

commands:
  login        -email <email> -password <password>
  logout
  profile
  favorites    [-page n]
  courses      [-name s] [-category s] [-from yyyy-MM-dd] [-to yyyy-MM-dd] [-page n]
  enroll       -course <id>
  tasks        -course <id> [-page n]
  submissions  -task <id> [-page n]
  grade        -submission <id> -task <id> -score n [-comment s]
  reviews      -course <id> [-page n]
  review       -course <id> -rating n -comment <s>
  feedback     -submission <id>
  chat         [-page n]
  thread       -conversation <id> [-page n]
  send         -conversation <id> -text <s>
`

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal("failed to create app: ", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Print("close error: ", err)
		}
	}()

	if err := run(context.Background(), a, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, command string, args []string) error {
	switch command {
	case "login":
		return runLogin(ctx, a, args)
	case "logout":
		return a.Profile.Logout()
	case "profile":
		return runProfile(ctx, a)
	case "favorites":
		return runFavorites(ctx, a, args)
	case "courses":
		return runCourses(ctx, a, args)
	case "enroll":
		return runEnroll(ctx, a, args)
	case "tasks":
		return runTasks(ctx, a, args)
	case "submissions":
		return runSubmissions(ctx, a, args)
	case "grade":
		return runGrade(ctx, a, args)
	case "reviews":
		return runReviews(ctx, a, args)
	case "review":
		return runReview(ctx, a, args)
	case "feedback":
		return runFeedback(ctx, a, args)
	case "chat":
		return runChat(ctx, a, args)
	case "thread":
		return runThread(ctx, a, args)
	case "send":
		return runSend(ctx, a, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func runLogin(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	user, err := a.Profile.Login(ctx, profile.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return fmt.Errorf("%s", listview.Translate(err))
	}
	fmt.Printf("Sesión iniciada: %s (%s)\n", user.Name, user.Role)
	return nil
}

func runProfile(ctx context.Context, a *app.App) error {
	p, msg := a.Account.Profile(ctx)
	if msg != "" {
		return fmt.Errorf("%s", msg)
	}
	fmt.Printf("%s <%s>\nRol: %s\n", p.Name, p.Email, p.Role)
	if p.About != "" {
		fmt.Println(p.About)
	}
	return nil
}

func runFavorites(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("favorites", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	a.Account.FavoritesList().SetPage(*page)
	return renderList("Cursos favoritos", a.Account.Favorites(ctx), courseRow)
}

func runCourses(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("courses", flag.ExitOnError)
	name := fs.String("name", "", "filter by name")
	category := fs.String("category", "", "filter by category")
	from := fs.String("from", "", "start date (yyyy-MM-dd)")
	to := fs.String("to", "", "end date (yyyy-MM-dd)")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	a.Browse.SetFilter("course_name", *name)
	a.Browse.SetFilter("category", *category)
	a.Browse.SetFilter("date_init", *from)
	a.Browse.SetFilter("date_end", *to)
	a.Browse.ApplyFilters()
	a.Browse.ActiveList().SetPage(*page)
	a.Browse.EndedList().SetPage(*page)

	if err := renderList("Cursos activos", a.Browse.Active(ctx), courseRow); err != nil {
		return err
	}
	fmt.Println()
	return renderList("Cursos finalizados", a.Browse.Ended(ctx), courseRow)
}

func runEnroll(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("enroll", flag.ExitOnError)
	courseID := fs.String("course", "", "course id")
	fs.Parse(args)

	c, err := a.Courses.Get(ctx, *courseID)
	if err != nil {
		return fmt.Errorf("%s", listview.Translate(err))
	}
	if msg := a.Browse.Enroll(ctx, *c); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	fmt.Printf("Inscrito en %s\n", c.Name)
	return nil
}

func runTasks(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("tasks", flag.ExitOnError)
	courseID := fs.String("course", "", "course id")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	screen := a.WorkScreen(*courseID)
	screen.TaskList().SetPage(*page)
	screen.ExamList().SetPage(*page)

	if err := renderList("Tareas", screen.Tasks(ctx), taskRow); err != nil {
		return err
	}
	fmt.Println()
	return renderList("Exámenes", screen.Exams(ctx), taskRow)
}

func runSubmissions(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("submissions", flag.ExitOnError)
	taskID := fs.String("task", "", "task id")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	screen := a.SubmissionsScreen(*taskID)
	screen.List().SetPage(*page)
	return renderList("Entregas", screen.Submissions(ctx), submissionRow)
}

func runGrade(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("grade", flag.ExitOnError)
	submissionID := fs.String("submission", "", "submission id")
	taskID := fs.String("task", "", "task id")
	score := fs.Float64("score", 0, "score, 0 to 100")
	comment := fs.String("comment", "", "feedback comment")
	fs.Parse(args)

	screen := a.SubmissionsScreen(*taskID)
	sub := domain.Submission{ID: *submissionID, TaskID: *taskID}
	if msg := screen.Grade(ctx, sub, task.GradeRequest{Score: *score, Comment: *comment}); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	fmt.Println("Entrega calificada")
	return nil
}

func runReviews(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("reviews", flag.ExitOnError)
	courseID := fs.String("course", "", "course id")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	screen := a.ReviewsScreen(*courseID)
	screen.List().SetPage(*page)
	return renderList("Reseñas", screen.Reviews(ctx), reviewRow)
}

func runReview(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	courseID := fs.String("course", "", "course id")
	rating := fs.Int("rating", 0, "rating, 1 to 5")
	comment := fs.String("comment", "", "review text")
	fs.Parse(args)

	screen := a.ReviewsScreen(*courseID)
	if msg := screen.Publish(ctx, *courseID, feedback.CreateReviewRequest{Rating: *rating, Comment: *comment}); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	fmt.Println("Reseña publicada")
	return nil
}

func runFeedback(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("feedback", flag.ExitOnError)
	submissionID := fs.String("submission", "", "submission id")
	fs.Parse(args)

	fb, err := a.Feedback.Generate(ctx, *submissionID)
	if err != nil {
		return fmt.Errorf("%s", listview.Translate(err))
	}
	fmt.Println(fb.Text)
	return nil
}

func runChat(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	a.Inbox.List().SetPage(*page)
	return renderList("Conversaciones", a.Inbox.Conversations(ctx), conversationRow)
}

func runThread(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("thread", flag.ExitOnError)
	conversationID := fs.String("conversation", "", "conversation id")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	screen := a.ThreadScreen(*conversationID)
	screen.List().SetPage(*page)
	return renderList("Mensajes", screen.Messages(ctx), messageRow)
}

func runSend(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	conversationID := fs.String("conversation", "", "conversation id")
	text := fs.String("text", "", "message text")
	fs.Parse(args)

	screen := a.ThreadScreen(*conversationID)
	if msg := screen.Send(ctx, *text); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	fmt.Println("Mensaje enviado")
	return nil
}

// renderList prints one list view the way the screens render it: the rows,
// then the pager line with the prev/next controls and their enablement.
func renderList[T any](title string, v listview.View[T], row func(T) string) error {
	switch v.Phase {
	case listview.PhaseError:
		return fmt.Errorf("%s", v.Message)
	case listview.PhaseEmpty:
		fmt.Printf("%s\n  (sin resultados)\n", title)
		return nil
	case listview.PhaseLoading:
		fmt.Printf("%s\n  Cargando...\n", title)
		return nil
	}

	fmt.Println(title)
	for _, item := range v.Items {
		fmt.Println("  " + row(item))
	}
	fmt.Printf("  %s  %s | %s\n", v.Pager.Label(), control("Anterior", v.Pager.PrevEnabled()), control("Siguiente", v.Pager.NextEnabled()))
	return nil
}

func control(label string, enabled bool) string {
	if enabled {
		return "[" + label + "]"
	}
	return label
}

func courseRow(c domain.Course) string {
	var marks []string
	if c.Enrolled {
		marks = append(marks, "inscrito")
	}
	if c.Favorite {
		marks = append(marks, "favorito")
	}
	suffix := ""
	if len(marks) > 0 {
		suffix = " (" + strings.Join(marks, ", ") + ")"
	}
	return fmt.Sprintf("%s  %s · %s · %d plazas%s", c.ID, c.Name, c.TeacherName, c.Quota, suffix)
}

func taskRow(t domain.Task) string {
	return fmt.Sprintf("%s  %s · entrega %s · máx %d", t.ID, t.Title, t.DueDate, t.MaxScore)
}

func submissionRow(s domain.Submission) string {
	grade := "sin calificar"
	if s.Graded() {
		grade = fmt.Sprintf("%.1f", *s.Score)
	}
	return fmt.Sprintf("%s  %s · %s", s.ID, s.StudentName, grade)
}

func reviewRow(r domain.Review) string {
	return fmt.Sprintf("%s  %d/5 · %s: %s", r.ID, r.Rating, r.AuthorName, r.Comment)
}

func conversationRow(c domain.Conversation) string {
	unread := ""
	if c.Unread > 0 {
		unread = fmt.Sprintf(" (%d sin leer)", c.Unread)
	}
	return fmt.Sprintf("%s  %s · %s%s", c.ID, c.Title, c.LastMessage, unread)
}

func messageRow(m domain.Message) string {
	return fmt.Sprintf("[%s] %s: %s", m.SentAt, m.SenderName, m.Text)
}
