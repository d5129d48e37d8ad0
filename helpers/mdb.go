package helpers

import (
	"crypto/tls"
	"fmt"
	"net"
	"reflect"
	"strings"
	"time"

	"github.com/globalsign/mgo"
	"github.com/prismbot/prism/cache"
	"github.com/prismbot/prism/models"
)

var (
	mDbSession  *mgo.Session
	mDbDatabase string
)

// ConnectMDB connects to mongodb and stores the session
func ConnectMDB(url string, database string) {
	var err error

	log := cache.GetLogger()
	log.WithField("module", "mdb").Info("Connecting to " + url)

	mgo.SetDebug(false)

	newUrl := strings.TrimSuffix(url, "?ssl=true")
	newUrl = strings.Replace(newUrl, "ssl=true&", "", -1)

	dialInfo, err := mgo.ParseURL(newUrl)
	if err != nil {
		log.WithField("module", "mdb").Error(err.Error())
		panic(err)
	}

	// setup TLS if we use SSL
	if newUrl != url {
		tlsConfig := &tls.Config{}
		tlsConfig.InsecureSkipVerify = true

		dialInfo.DialServer = func(addr *mgo.ServerAddr) (net.Conn, error) {
			conn, err := tls.Dial("tcp", addr.String(), tlsConfig)
			return conn, err
		}
	}

	mDbSession, err = mgo.DialWithInfo(dialInfo)
	if err != nil {
		log.WithField("module", "mdb").Error(err.Error())
		panic(err)
	}

	mDbSession.SetMode(mgo.Primary, false)
	mDbSession.SetSafe(nil)

	mDbDatabase = database

	log.WithField("module", "mdb").Info("Connected!")
}

// GetMDb is a simple getter for the mongodb database.
func GetMDb() *mgo.Database {
	return mDbSession.DB(mDbDatabase)
}

// GetMDbSession is a simple getter for the mongodb session.
func GetMDbSession() *mgo.Session {
	return mDbSession
}

func MdbCollection(collection models.MongoDbCollection) (query *mgo.Collection) {
	return GetMDb().C(collection.String())
}

func MdbOne(query *mgo.Query, object interface{}) (err error) {
	start := time.Now()
	err = query.One(object)
	took := time.Since(start)

	if cache.HasKeen() {
		go func() {
			defer Recover()

			queryValue := reflect.ValueOf(query).Elem()
			queryOp := queryValue.FieldByName("query").FieldByName("op")

			err := cache.GetKeen().AddEvent("Prism_MongoDB", &KeenMongoDbEvent{
				Seconds:    took.Seconds(),
				Type:       "query",
				Method:     "MdbOne()",
				Collection: stripDatabaseFromCollection(queryOp.FieldByName("collection").String()),
				Query:      truncateKeenValue(fmt.Sprintf("%+v", reflect.ValueOf(queryOp.FieldByName("query")).Interface())),
			})
			if err != nil {
				cache.GetLogger().WithField("module", "mdb").Error("Error logging MongoDB request to keen: ", err.Error())
			}
		}()
	}
	return
}

func MDbUpsert(collection models.MongoDbCollection, selector interface{}, data interface{}) (err error) {
	start := time.Now()
	_, err = GetMDb().C(collection.String()).Upsert(selector, data)
	took := time.Since(start)

	if cache.HasKeen() {
		go func() {
			defer Recover()

			err := cache.GetKeen().AddEvent("Prism_MongoDB", &KeenMongoDbEvent{
				Seconds:    took.Seconds(),
				Type:       "upsert",
				Method:     "MDbUpsert()",
				Collection: stripDatabaseFromCollection(collection.String()),
				Query:      fmt.Sprintf("%+v", selector),
				Data:       truncateKeenValue(fmt.Sprintf("%+v", data)),
			})
			if err != nil {
				cache.GetLogger().WithField("module", "mdb").Error("Error logging MongoDB request to keen: ", err.Error())
			}
		}()
	}

	return err
}

func MdbDeleteQuery(collection models.MongoDbCollection, selector interface{}) (err error) {
	start := time.Now()
	err = GetMDb().C(collection.String()).Remove(selector)
	took := time.Since(start)

	if cache.HasKeen() {
		go func() {
			defer Recover()

			err := cache.GetKeen().AddEvent("Prism_MongoDB", &KeenMongoDbEvent{
				Seconds:    took.Seconds(),
				Type:       "remove",
				Method:     "MdbDeleteQuery()",
				Collection: stripDatabaseFromCollection(collection.String()),
				Query:      truncateKeenValue(fmt.Sprintf("%+v", selector)),
			})
			if err != nil {
				cache.GetLogger().WithField("module", "mdb").Error("Error logging MongoDB request to keen: ", err.Error())
			}
		}()
	}

	return err
}

func MDbIter(query *mgo.Query) (iter *mgo.Iter) {
	start := time.Now()
	iter = query.Iter()
	took := time.Since(start)

	if cache.HasKeen() {
		go func() {
			defer Recover()

			queryValue := reflect.ValueOf(query).Elem()
			queryOp := queryValue.FieldByName("query").FieldByName("op")

			err := cache.GetKeen().AddEvent("Prism_MongoDB", &KeenMongoDbEvent{
				Seconds:    took.Seconds(),
				Type:       "query",
				Method:     "MDbIter()",
				Collection: stripDatabaseFromCollection(queryOp.FieldByName("collection").String()),
				Query:      truncateKeenValue(fmt.Sprintf("%+v", reflect.ValueOf(queryOp.FieldByName("query")).Interface())),
			})
			if err != nil {
				cache.GetLogger().WithField("module", "mdb").Error("Error logging MongoDB request to keen: ", err.Error())
			}
		}()
	}
	return
}

func MdbCount(collection models.MongoDbCollection, query interface{}) (count int, err error) {
	start := time.Now()
	count, err = MdbCollection(collection).Find(query).Count()
	took := time.Since(start)

	if cache.HasKeen() {
		go func() {
			defer Recover()

			err := cache.GetKeen().AddEvent("Prism_MongoDB", &KeenMongoDbEvent{
				Seconds:    took.Seconds(),
				Type:       "count",
				Method:     "MdbCount()",
				Collection: stripDatabaseFromCollection(collection.String()),
				Query:      truncateKeenValue(fmt.Sprintf("%+v", query)),
			})
			if err != nil {
				cache.GetLogger().WithField("module", "mdb").Error("Error logging MongoDB request to keen: ", err.Error())
			}
		}()
	}
	return count, err
}

// IsMdbNotFound returns true if the given error is a not found error from MongoDB
func IsMdbNotFound(err error) (notFound bool) {
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return true
		}
	}
	return false
}

func stripDatabaseFromCollection(input string) (output string) {
	return strings.TrimPrefix(input, mDbDatabase+".")
}

func truncateKeenValue(input string) string {
	if len(input) < 8000 {
		return input
	}
	return input[0:7999]
}

type KeenMongoDbEvent struct {
	Seconds    float64
	Collection string
	Type       string
	Method     string
	Query      string `json:",omitempty"`
	Id         string `json:",omitempty"`
	Data       string `json:",omitempty"`
}
