package database

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCollection tạo collection nếu chưa tồn tại trong database
func EnsureCollection(ctx context.Context, db *mongo.Database, name string) (*mongo.Collection, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	if len(names) == 0 {
		logger.WithModuleAndCollection("database", name).Info("Collection chưa tồn tại, tạo mới")
		if err := db.CreateCollection(ctx, name); err != nil && !isNamespaceExistsError(err) {
			return nil, fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}
	return db.Collection(name), nil
}

// indexSpec mô tả một index khai báo trên model qua tag `index`
type indexSpec struct {
	Name    string
	Keys    bson.D
	Options *options.IndexOptions
}

// parseIndexTag tách tag index thành danh sách cấu hình.
// Ví dụ: `index:"unique,sparse;single,order:-1"` cho ra hai cấu hình.
func parseIndexTag(tag string) []map[string]string {
	var result []map[string]string
	for _, part := range strings.Split(tag, ";") {
		entry := map[string]string{}
		for _, sub := range strings.Split(part, ",") {
			sub = strings.TrimSpace(sub)
			if sub == "" {
				continue
			}
			k, v, _ := strings.Cut(sub, ":")
			entry[k] = v
		}
		if len(entry) > 0 {
			result = append(result, entry)
		}
	}
	return result
}

// parseOrder lấy thứ tự sắp xếp (1 hoặc -1) từ cấu hình
func parseOrder(cfg map[string]string) int {
	if cfg["order"] == "-1" {
		return -1
	}
	return 1
}

// bsonFieldName lấy tên field bson, bỏ các option như ",omitempty"
func bsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("bson"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// indexSpecsFor đọc các tag index của model.
// Hỗ trợ: single (order:-1), unique (kèm sparse), ttl:<giây>.
func indexSpecsFor(model interface{}) ([]indexSpec, error) {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}
	if modelType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model phải là struct, nhận %s", modelType.Kind())
	}

	var specs []indexSpec
	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := bsonFieldName(field)
		if bsonField == "" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			_, sparse := cfg["sparse"]

			if _, ok := cfg["single"]; ok {
				name := bsonField + "_single"
				opts := options.Index().SetName(name)
				if sparse {
					opts.SetSparse(true)
				}
				specs = append(specs, indexSpec{Name: name, Keys: bson.D{{Key: bsonField, Value: parseOrder(cfg)}}, Options: opts})
			}

			if _, ok := cfg["unique"]; ok {
				name := bsonField + "_unique"
				opts := options.Index().SetName(name).SetUnique(true)
				// Sparse cho phép nhiều document không có field này
				if sparse {
					opts.SetSparse(true)
				}
				specs = append(specs, indexSpec{Name: name, Keys: bson.D{{Key: bsonField, Value: 1}}, Options: opts})
			}

			if ttlValue, ok := cfg["ttl"]; ok {
				ttl, err := strconv.Atoi(ttlValue)
				if err != nil {
					return nil, fmt.Errorf("TTL không hợp lệ cho field %s: %w", bsonField, err)
				}
				name := bsonField + "_ttl"
				opts := options.Index().SetName(name).SetExpireAfterSeconds(int32(ttl))
				specs = append(specs, indexSpec{Name: name, Keys: bson.D{{Key: bsonField, Value: 1}}, Options: opts})
			}
		}
	}
	return specs, nil
}

// toInt chuyển giá trị số trong thông tin index (int32/int64/float64) về int
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// compareIndex kiểm tra index hiện có có khớp với khai báo không (keys, unique, sparse, ttl)
func compareIndex(existing bson.M, spec indexSpec) bool {
	existingKeys, ok := existing["key"].(bson.M)
	if !ok || len(existingKeys) != len(spec.Keys) {
		return false
	}
	for _, key := range spec.Keys {
		want, _ := toInt(key.Value)
		got, ok := toInt(existingKeys[key.Key])
		if !ok || got != want {
			return false
		}
	}

	flag := func(name string) bool {
		b, _ := existing[name].(bool)
		return b
	}
	wantUnique := spec.Options.Unique != nil && *spec.Options.Unique
	wantSparse := spec.Options.Sparse != nil && *spec.Options.Sparse
	if flag("unique") != wantUnique || flag("sparse") != wantSparse {
		return false
	}

	if spec.Options.ExpireAfterSeconds != nil {
		ttl, ok := toInt(existing["expireAfterSeconds"])
		if !ok || int32(ttl) != *spec.Options.ExpireAfterSeconds {
			return false
		}
	}
	return true
}

// CreateIndexes tạo các index khai báo trên model; index cùng tên nhưng khác cấu hình sẽ bị xóa và tạo lại
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	log := logger.WithModuleAndCollection("database", collection.Name())

	specs, err := indexSpecsFor(model)
	if err != nil {
		return err
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	existingIndexes := map[string]bson.M{}
	for cursor.Next(ctx) {
		var info bson.M
		if err := cursor.Decode(&info); err != nil {
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if name, ok := info["name"].(string); ok {
			existingIndexes[name] = info
		}
	}

	for _, spec := range specs {
		if existing, ok := existingIndexes[spec.Name]; ok {
			if compareIndex(existing, spec) {
				log.Debugf("Index %s đã tồn tại và đúng cấu hình, bỏ qua", spec.Name)
				continue
			}
			if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
				return fmt.Errorf("không thể xóa index %s: %w", spec.Name, err)
			}
			log.Infof("Đã xóa index cũ: %s", spec.Name)
		}

		if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: spec.Options}); err != nil && !isIndexExistsError(err) {
			return fmt.Errorf("không thể tạo index %s: %w", spec.Name, err)
		}
		log.Infof("Đã tạo index: %s", spec.Name)
	}
	return nil
}

// isIndexExistsError: index đã tồn tại (code 85/86) thì coi như thành công
func isIndexExistsError(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 85 || cmdErr.Code == 86
	}
	return false
}

// isNamespaceExistsError: collection đã được tạo bởi instance khác (code 48)
func isNamespaceExistsError(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 48
	}
	return false
}
