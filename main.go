package main

import (
	"log"
	"net/http"

	"github.com/rs/cors"
	"gorm.io/gorm"

	"skillforge-backend/config"
	"skillforge-backend/controllers/authentication"
	communityCtrl "skillforge-backend/controllers/community"
	coursesCtrl "skillforge-backend/controllers/courses"
	jobsCtrl "skillforge-backend/controllers/jobs"
	"skillforge-backend/controllers/uploads"
	"skillforge-backend/models/community"
	"skillforge-backend/models/courses"
	"skillforge-backend/models/jobs"
	"skillforge-backend/models/users"
)

func main() {
	config.LoadConfig()

	// Инициализируем базу данных
	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Ошибка инициализации базы данных: %v", err)
	}

	// Выполняем миграцию базы данных
	err = db.AutoMigrate(
		&users.User{},
		&users.Skill{},
		&users.UserSkill{},
		&courses.Course{},
		&courses.CourseModule{},
		&courses.Lesson{},
		&courses.Enrollment{},
		&courses.LessonProgress{},
		&courses.Review{},
		&jobs.Job{},
		&jobs.Application{},
		&jobs.SavedJob{},
		&community.Post{},
		&community.Comment{},
		&community.Like{},
		&community.Share{},
		&community.Tag{},
	)
	if err != nil {
		log.Fatalf("Ошибка миграции базы данных: %v", err)
	}

	// Проверка подключения к базе данных
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Ошибка получения подключения к базе данных: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	log.Println("Подключение к базе данных успешно")

	mux := http.NewServeMux()

	withDB := func(handler func(http.ResponseWriter, *http.Request, *gorm.DB)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			handler(w, r, db)
		}
	}

	// Аутентификация и профиль
	mux.HandleFunc("/register", withDB(authentication.Register))
	mux.HandleFunc("/login", withDB(authentication.Login))
	mux.HandleFunc("/logout", authentication.Logout)
	mux.HandleFunc("/login/google", authentication.HandleGoogleLogin)
	mux.HandleFunc("/callback/google", withDB(authentication.HandleGoogleCallback))
	mux.HandleFunc("/profile", withDB(authentication.GetProfile))
	mux.HandleFunc("/profile/update", withDB(authentication.UpdateProfile))
	mux.HandleFunc("/password/change", withDB(authentication.ChangePassword))
	mux.HandleFunc("/account", withDB(authentication.DeleteAccount))
	mux.HandleFunc("/admin/assign-role", withDB(authentication.AssignRole))

	// Курсы
	mux.HandleFunc("/courses", withDB(coursesCtrl.ListCourses))
	mux.HandleFunc("/courses/create", withDB(coursesCtrl.CreateCourse))
	mux.HandleFunc("/courses/update", withDB(coursesCtrl.UpdateCourse))
	mux.HandleFunc("/courses/delete", withDB(coursesCtrl.DeleteCourse))
	mux.HandleFunc("/courses/detail", withDB(coursesCtrl.GetCourseDetail))
	mux.HandleFunc("/modules/create", withDB(coursesCtrl.CreateModule))
	mux.HandleFunc("/lessons/create", withDB(coursesCtrl.CreateLesson))
	mux.HandleFunc("/courses/enroll", withDB(coursesCtrl.Enroll))
	mux.HandleFunc("/enrollments", withDB(coursesCtrl.ListEnrollments))
	mux.HandleFunc("/lessons/complete", withDB(coursesCtrl.CompleteLesson))
	mux.HandleFunc("/reviews/create", withDB(coursesCtrl.CreateReview))
	mux.HandleFunc("/reviews", withDB(coursesCtrl.ListReviews))
	mux.HandleFunc("/instructor/stats", withDB(coursesCtrl.GetInstructorStats))

	// Вакансии
	mux.HandleFunc("/jobs", withDB(jobsCtrl.ListJobs))
	mux.HandleFunc("/jobs/create", withDB(jobsCtrl.CreateJob))
	mux.HandleFunc("/jobs/apply", withDB(jobsCtrl.Apply))
	mux.HandleFunc("/applications", withDB(jobsCtrl.ListApplications))
	mux.HandleFunc("/jobs/save", withDB(jobsCtrl.ToggleSave))
	mux.HandleFunc("/jobs/saved", withDB(jobsCtrl.ListSaved))
	mux.HandleFunc("/career/overview", withDB(jobsCtrl.CareerOverview))

	// Сообщество
	mux.HandleFunc("/posts", withDB(communityCtrl.ListPosts))
	mux.HandleFunc("/posts/create", withDB(communityCtrl.CreatePost))
	mux.HandleFunc("/posts/detail", withDB(communityCtrl.GetPostDetail))
	mux.HandleFunc("/posts/delete", withDB(communityCtrl.DeletePost))
	mux.HandleFunc("/comments/create", withDB(communityCtrl.CreateComment))
	mux.HandleFunc("/comments/delete", withDB(communityCtrl.DeleteComment))
	mux.HandleFunc("/likes/toggle", withDB(communityCtrl.ToggleLike))
	mux.HandleFunc("/shares/create", withDB(communityCtrl.SharePost))
	mux.HandleFunc("/tags", withDB(communityCtrl.ListTags))

	// Загрузки и раздача публичных файлов. Каталог загрузок раздается
	// под фиксированным префиксом, где бы он ни лежал на диске.
	mux.HandleFunc("/upload", withDB(uploads.UploadFile))
	mux.Handle(uploads.PublicPath, http.StripPrefix(uploads.PublicPath, http.FileServer(http.Dir(config.AppConfig.UploadDir))))
	mux.Handle("/public/", http.StripPrefix("/public/", http.FileServer(http.Dir("public"))))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{config.AppConfig.AllowedOrigins},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(mux)

	// Запускаем сервер
	log.Printf("Сервер запущен на порту %s", config.AppConfig.Port)
	if err := http.ListenAndServe(":"+config.AppConfig.Port, corsHandler); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
