package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/bgugger/atelier/apps/api/echo"
	"github.com/bgugger/atelier/core"
	"github.com/bgugger/atelier/core/content"
	"github.com/bgugger/atelier/core/user"
	appfs "github.com/bgugger/atelier/fs"
	emailsvc "github.com/bgugger/atelier/services/email"
	uploadsvc "github.com/bgugger/atelier/services/uploads"
	dummydb "github.com/bgugger/atelier/storage/database/dummy"
	testutil "github.com/bgugger/atelier/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	server      Server
	conf        *core.Config
	contentRepo content.Repository
	usrRepo     user.Repository
}

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := testutil.NewConfig()
	uploadDir, err := ioutil.TempDir("", "uploads")
	if err != nil {
		t.Fatalf("TempDir(): %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(uploadDir) })
	conf.Uploads.Dir = uploadDir

	logger := testutil.Logger{T: t}

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	contentRepo := dummydb.NewContentRepository(db)
	usrRepo := dummydb.NewUserRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	t.Cleanup(emailsvc.ClearSentMessages)
	contentSvc := content.NewService(contentRepo, mailSvc, conf)
	usrSvc := user.NewService(usrRepo)
	uploads := uploadsvc.NewDiskStore(conf)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	core.ParseEmailTemplates(appfs.FS, logger)

	// set up server
	app := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		ContentSvc: contentSvc,
		UserSvc:    usrSvc,
		Uploads:    uploads,
		Validate:   validate,
		Translator: translator,
	})

	return &testApp{server: app, conf: conf, contentRepo: contentRepo, usrRepo: usrRepo}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

type uploadFile struct {
	field    string
	filename string
	contents []byte
}

// newUploadRequest builds a multipart form request carrying the given files.
func newUploadRequest(t *testing.T, path, token string, files []uploadFile, fields map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.filename)
		if err != nil {
			t.Fatalf("CreateFormFile(): %v", err)
		}
		if _, err = io.Copy(fw, bytes.NewReader(f.contents)); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	for field, value := range fields {
		if err := w.WriteField(field, value); err != nil {
			t.Fatalf("WriteField(): %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, conf *core.Config, usr user.User) string {
	claims := GetUserClaims(conf, usr)
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
