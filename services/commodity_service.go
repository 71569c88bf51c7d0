package services

import (
	"context"
	"fiber-admin/models"
	"fiber-admin/repositories"
	"fiber-admin/utils/xerrors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type CommodityGroupInput struct {
	GrpKey   string `json:"grp_key" validate:"required,max=50"`
	GrpName  string `json:"grp_name" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

type CommodityMapInput struct {
	GrpKey   string `json:"grp_key" validate:"required,max=50"`
	CmtName  string `json:"cmt_name" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

type CommodityUserInput struct {
	EN       string `json:"en" validate:"required,max=50"`
	GrpKey   string `json:"grp_key" validate:"required,max=50"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	IsActive *bool  `json:"is_active"`
}

type ImportResult struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

type CommodityService struct {
	repo     *repositories.CommodityRepository
	log      *zap.Logger
	validate *validator.Validate
}

func NewCommodityService(repo *repositories.CommodityRepository, log *zap.Logger) *CommodityService {
	return &CommodityService{repo: repo, log: log, validate: validator.New()}
}

func activeOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// Groups

func (s *CommodityService) GetGroups(ctx context.Context) ([]models.CommodityGroup, error) {
	groups, err := s.repo.GetGroups(ctx)
	if groups == nil && err == nil {
		groups = []models.CommodityGroup{}
	}
	return groups, err
}

func (s *CommodityService) CreateGroup(ctx context.Context, input CommodityGroupInput, actor int) (*models.CommodityGroup, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Validation(err.Error())
	}
	key := strings.ToUpper(strings.TrimSpace(input.GrpKey))
	exists, err := s.repo.GroupExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, xerrors.Validation("group key " + key + " already exists")
	}
	group := models.CommodityGroup{
		GrpKey:    key,
		GrpName:   strings.TrimSpace(input.GrpName),
		IsActive:  activeOr(input.IsActive, true),
		CreatedBy: actor,
	}
	if err := s.repo.SaveGroup(ctx, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateGroup: grp_key tidak bisa diubah karena dipakai map dan user
func (s *CommodityService) UpdateGroup(ctx context.Context, id uint, input CommodityGroupInput, actor int) (*models.CommodityGroup, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Validation(err.Error())
	}
	group, err := s.repo.GetGroupByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(group.GrpKey, strings.TrimSpace(input.GrpKey)) {
		return nil, xerrors.Validation("group key cannot be changed")
	}
	group.GrpName = strings.TrimSpace(input.GrpName)
	group.IsActive = activeOr(input.IsActive, group.IsActive)
	group.UpdatedBy = actor
	if err := s.repo.SaveGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *CommodityService) DeleteGroup(ctx context.Context, id uint) error {
	return s.repo.DeleteGroup(ctx, id)
}

// ExportGroups menulis semua group beserta commodity-nya ke xlsx.
func (s *CommodityService) ExportGroups(ctx context.Context, w io.Writer) error {
	groups, err := s.repo.GetGroups(ctx)
	if err != nil {
		return err
	}
	maps, err := s.repo.GetMaps(ctx, "")
	if err != nil {
		return err
	}
	byGroup := map[string][]string{}
	for _, m := range maps {
		byGroup[m.GrpKey] = append(byGroup[m.GrpKey], m.CmtName)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Group Key")
	f.SetCellValue(sheet, "B1", "Group Name")
	f.SetCellValue(sheet, "C1", "Active")
	f.SetCellValue(sheet, "D1", "Commodities")

	for i, g := range groups {
		row := i + 2
		active := "N"
		if g.IsActive {
			active = "Y"
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), g.GrpKey)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), g.GrpName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), active)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), strings.Join(byGroup[g.GrpKey], ", "))
	}
	return f.Write(w)
}

// Maps

func (s *CommodityService) GetMaps(ctx context.Context, grpKey string) ([]models.CommodityGroupMap, error) {
	maps, err := s.repo.GetMaps(ctx, strings.ToUpper(strings.TrimSpace(grpKey)))
	if maps == nil && err == nil {
		maps = []models.CommodityGroupMap{}
	}
	return maps, err
}

func (s *CommodityService) CreateMap(ctx context.Context, input CommodityMapInput, actor int) (*models.CommodityGroupMap, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Validation(err.Error())
	}
	key := strings.ToUpper(strings.TrimSpace(input.GrpKey))
	if err := s.requireGroup(ctx, key); err != nil {
		return nil, err
	}
	m := models.CommodityGroupMap{
		GrpKey:    key,
		CmtName:   strings.TrimSpace(input.CmtName),
		IsActive:  activeOr(input.IsActive, true),
		CreatedBy: actor,
	}
	if err := s.repo.SaveMap(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *CommodityService) UpdateMap(ctx context.Context, id uint, input CommodityMapInput, actor int) (*models.CommodityGroupMap, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Validation(err.Error())
	}
	m, err := s.repo.GetMapByID(ctx, id)
	if err != nil {
		return nil, err
	}
	key := strings.ToUpper(strings.TrimSpace(input.GrpKey))
	if err := s.requireGroup(ctx, key); err != nil {
		return nil, err
	}
	m.GrpKey = key
	m.CmtName = strings.TrimSpace(input.CmtName)
	m.IsActive = activeOr(input.IsActive, m.IsActive)
	m.UpdatedBy = actor
	if err := s.repo.SaveMap(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CommodityService) DeleteMap(ctx context.Context, id uint) error {
	return s.repo.DeleteMap(ctx, id)
}

// ImportMaps membaca sheet pertama: kolom A = group key, kolom B = commodity.
// Baris pertama dianggap header.
func (s *CommodityService) ImportMaps(ctx context.Context, r io.Reader, actor int) (ImportResult, error) {
	result := ImportResult{Errors: []string{}}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return result, xerrors.Validation("failed to open excel file: " + err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return result, xerrors.Validation("excel file has no sheet")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return result, err
	}

	existing, err := s.repo.GetMaps(ctx, "")
	if err != nil {
		return result, err
	}
	seen := map[string]bool{}
	for _, m := range existing {
		seen[m.GrpKey+"|"+strings.ToLower(m.CmtName)] = true
	}
	groups := map[string]bool{}

	var batch []models.CommodityGroupMap
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			result.Skipped++
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(row[0]))
		name := strings.TrimSpace(row[1])
		if key == "" || name == "" {
			result.Skipped++
			continue
		}
		if _, checked := groups[key]; !checked {
			ok, err := s.repo.GroupExists(ctx, key)
			if err != nil {
				return result, err
			}
			groups[key] = ok
		}
		if !groups[key] {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: group %s not found", i+1, key))
			continue
		}
		dedup := key + "|" + strings.ToLower(name)
		if seen[dedup] {
			result.Skipped++
			continue
		}
		seen[dedup] = true
		batch = append(batch, models.CommodityGroupMap{
			GrpKey:    key,
			CmtName:   name,
			IsActive:  true,
			CreatedBy: actor,
		})
	}

	if err := s.repo.CreateMaps(ctx, batch); err != nil {
		return result, err
	}
	result.Inserted = len(batch)
	s.log.Info("commodity maps imported",
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// Users

func (s *CommodityService) GetUsers(ctx context.Context) ([]models.CommodityUser, error) {
	users, err := s.repo.GetUsers(ctx)
	if users == nil && err == nil {
		users = []models.CommodityUser{}
	}
	return users, err
}

func (s *CommodityService) CreateUser(ctx context.Context, input CommodityUserInput, actor int) (*models.CommodityUser, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Validation(err.Error())
	}
	key := strings.ToUpper(strings.TrimSpace(input.GrpKey))
	if err := s.requireGroup(ctx, key); err != nil {
		return nil, err
	}
	u := models.CommodityUser{
		EN:        strings.TrimSpace(input.EN),
		GrpKey:    key,
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		IsActive:  activeOr(input.IsActive, true),
		CreatedBy: actor,
	}
	if err := s.repo.SaveUser(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *CommodityService) UpdateUser(ctx context.Context, id uint, input CommodityUserInput, actor int) (*models.CommodityUser, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Validation(err.Error())
	}
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	key := strings.ToUpper(strings.TrimSpace(input.GrpKey))
	if err := s.requireGroup(ctx, key); err != nil {
		return nil, err
	}
	u.EN = strings.TrimSpace(input.EN)
	u.GrpKey = key
	u.Name = strings.TrimSpace(input.Name)
	u.Email = strings.TrimSpace(input.Email)
	u.IsActive = activeOr(input.IsActive, u.IsActive)
	u.UpdatedBy = actor
	if err := s.repo.SaveUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *CommodityService) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *CommodityService) requireGroup(ctx context.Context, key string) error {
	ok, err := s.repo.GroupExists(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return xerrors.Validation("group " + key + " does not exist")
	}
	return nil
}
