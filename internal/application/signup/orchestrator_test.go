package signup_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/goagent-api/internal/application/dto"
	"github.com/jhoicas/goagent-api/internal/application/signup"
	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	tplDrop    = "tpl-drop"
	tplTheme   = "tpl-theme"
	tplInfl    = "tpl-infl"
	tplOther   = "tpl-other"
	widgetDflt = "widget-default"
)

var errBoom = errors.New("boom")

type fixture struct {
	identities *identityStoreMock
	templates  *templateServiceMock
	orgs       *orgProvisionerMock
	clients    *clientProvisionerMock
	records    *recordRepoMock
	metrics    *recorderSpy
	orch       *signup.Orchestrator
}

func newFixture(t *testing.T, stepTimeout time.Duration) *fixture {
	t.Helper()
	f := &fixture{
		identities: &identityStoreMock{},
		templates:  &templateServiceMock{},
		orgs:       &orgProvisionerMock{},
		clients:    &clientProvisionerMock{},
		records:    &recordRepoMock{},
		metrics:    &recorderSpy{},
	}
	f.identities.Test(t)
	f.templates.Test(t)
	f.orgs.Test(t)
	f.clients.Test(t)
	f.records.Test(t)

	f.orch = signup.NewOrchestrator(signup.Deps{
		Identities: f.identities,
		Templates:  f.templates,
		Orgs:       f.orgs,
		Clients:    f.clients,
		Records:    f.records,
		Catalog: signup.TemplateCatalog{
			Templates: map[entity.BusinessType]string{
				entity.BusinessDropshipper: tplDrop,
				entity.BusinessThemePage:   tplTheme,
				entity.BusinessInfluencer:  tplInfl,
				entity.BusinessOther:       tplOther,
			},
			DefaultWidgetID: widgetDflt,
		},
		Metrics:     f.metrics,
		StepTimeout: stepTimeout,
	})
	return f
}

func (f *fixture) assertNoProvisioning(t *testing.T) {
	t.Helper()
	assert.Empty(t, f.templates.Calls, "no debe exportar/importar plantillas")
	assert.Empty(t, f.orgs.Calls, "no debe crear organización")
	assert.Empty(t, f.clients.Calls, "no debe crear cliente")
	assert.Empty(t, f.records.Calls, "no debe persistir SignupRecord")
}

// captureRecord configura Save para devolver err y guardar el record recibido.
func (f *fixture) captureRecord(err error) *entity.SignupRecord {
	captured := &entity.SignupRecord{}
	f.records.On("Save", mock.Anything, mock.AnythingOfType("*entity.SignupRecord")).
		Run(func(args mock.Arguments) {
			*captured = *args.Get(1).(*entity.SignupRecord)
		}).
		Return(err).Once()
	return captured
}

func newIdentity(id, email string) *entity.Identity {
	return &entity.Identity{ID: id, Email: email, CreatedAt: time.Now(), LastSignInAt: time.Now()}
}

func exportOf(templateID string) *entity.TemplateExport {
	return &entity.TemplateExport{SourceTemplateID: templateID, RawTemplatePayload: json.RawMessage(`{"prompt":"hola"}`)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_TodoExitoso_Influencer(t *testing.T) {
	f := newFixture(t, time.Second)
	export := exportOf(tplInfl)
	agent := &entity.ClonedAgent{ID: "agent-9", Name: "Influencer", SourceTemplateID: tplInfl}
	org := &entity.Organization{ID: "org-1", Name: "Jane", WidgetIDs: []string{"agent-9"}}
	client := entity.NewClient("org-1", "Jane", "jane@x.com", "p1")

	f.identities.On("Exists", mock.Anything, "jane@x.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "jane@x.com", "p1", "Jane").Return(newIdentity("uid-1", "jane@x.com"), nil).Once()
	f.templates.On("ExportTemplate", mock.Anything, tplInfl).Return(export, nil).Once()
	f.templates.On("ImportTemplate", mock.Anything, export, entity.BusinessInfluencer, tplInfl).Return(agent, nil).Once()
	f.orgs.On("CreateOrganization", mock.Anything, "Jane", "agent-9").Return(org, nil).Once()
	f.clients.On("CreateClient", mock.Anything, "org-1", "Jane", "jane@x.com", "p1").Return(client, nil).Once()
	rec := f.captureRecord(nil)

	out := f.orch.Signup(context.Background(), dto.SignupRequest{
		Name: "Jane", Email: "jane@x.com", Password: "p1", BusinessType: "influencer",
	})

	require.Equal(t, signup.OutcomeSuccess, out.Kind)
	assert.Equal(t, "uid-1", out.IdentityID)
	assert.Equal(t, signup.StateResponding, out.State)
	require.NotNil(t, out.Record)

	assert.Equal(t, "uid-1", rec.IdentityID)
	assert.Equal(t, "Jane", rec.Name)
	assert.Equal(t, "jane@x.com", rec.Email)
	assert.Equal(t, entity.BusinessInfluencer, rec.BusinessType)
	assert.Equal(t, entity.PlanFree, rec.Plan)
	require.NotNil(t, rec.Organization)
	assert.Contains(t, rec.Organization.WidgetIDs, "agent-9",
		"la organización debe quedar ligada al agente clonado")
	require.NotNil(t, rec.ClonedAgent)
	assert.Equal(t, "agent-9", rec.ClonedAgent.ID)
	require.NotNil(t, rec.Client)
	assert.True(t, rec.Client.IsOrgAdmin)

	assert.Equal(t, []signup.OutcomeKind{signup.OutcomeSuccess}, f.metrics.outcomes)
	assert.Empty(t, f.metrics.failures)

	f.identities.AssertExpectations(t)
	f.templates.AssertExpectations(t)
	f.orgs.AssertExpectations(t)
	f.clients.AssertExpectations(t)
	f.records.AssertExpectations(t)
}

func TestSignup_NormalizaEmailYNombre(t *testing.T) {
	f := newFixture(t, time.Second)
	f.identities.On("Exists", mock.Anything, "jane@x.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "jane@x.com", "p1", "Jane").Return(newIdentity("uid-1", "jane@x.com"), nil).Once()
	f.templates.On("ExportTemplate", mock.Anything, tplOther).Return(nil, domain.ErrTemplateUnavailable).Once()
	f.orgs.On("CreateOrganization", mock.Anything, "Jane", widgetDflt).Return(nil, domain.ErrOrgProvisioningFailed).Once()
	f.captureRecord(nil)

	out := f.orch.Signup(context.Background(), dto.SignupRequest{
		Name: "  Jane ", Email: "  Jane@X.com ", Password: "p1",
	})

	assert.Equal(t, signup.OutcomeSuccess, out.Kind)
	f.identities.AssertExpectations(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación: sin efectos secundarios
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_CamposFaltantes_SinLlamadasExternas(t *testing.T) {
	cases := map[string]dto.SignupRequest{
		"sin name":      {Email: "a@b.com", Password: "secret"},
		"sin email":     {Name: "Ana", Password: "secret"},
		"sin password":  {Name: "Ana", Email: "a@b.com"},
		"solo espacios": {Name: "   ", Email: "a@b.com", Password: "secret"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, time.Second)

			out := f.orch.Signup(context.Background(), in)

			assert.Equal(t, signup.OutcomeFatal, out.Kind)
			assert.ErrorIs(t, out.Err, domain.ErrMissingFields)
			assert.Equal(t, signup.StateValidatingInput, out.State)
			assert.Empty(t, f.identities.Calls, "no debe consultar el proveedor de identidad")
			f.assertNoProvisioning(t)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Duplicados: consultivo + autoritativo
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_DuplicadoConsultivo_Conflict(t *testing.T) {
	f := newFixture(t, time.Second)
	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(true, nil).Once()

	out := f.orch.Signup(context.Background(), dto.SignupRequest{Name: "Ana", Email: "ana@b.com", Password: "secret"})

	assert.Equal(t, signup.OutcomeConflict, out.Kind)
	assert.ErrorIs(t, out.Err, domain.ErrDuplicateIdentity)
	f.identities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertNoProvisioning(t)
}

func TestSignup_FalloLecturaDuplicado_Continua(t *testing.T) {
	f := newFixture(t, time.Second)
	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, errBoom).Once()
	f.identities.On("Create", mock.Anything, "ana@b.com", "secret", "Ana").Return(newIdentity("uid-2", "ana@b.com"), nil).Once()
	f.templates.On("ExportTemplate", mock.Anything, tplOther).Return(nil, domain.ErrTemplateUnavailable).Once()
	f.orgs.On("CreateOrganization", mock.Anything, "Ana", widgetDflt).Return(nil, domain.ErrOrgProvisioningFailed).Once()
	f.captureRecord(nil)

	out := f.orch.Signup(context.Background(), dto.SignupRequest{Name: "Ana", Email: "ana@b.com", Password: "secret"})

	assert.Equal(t, signup.OutcomeSuccess, out.Kind, "el fallo del chequeo consultivo no debe bloquear el registro")
	assert.Equal(t, "uid-2", out.IdentityID)
}

func TestSignup_IdentidadDuplicada_Conflict(t *testing.T) {
	f := newFixture(t, time.Second)
	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "ana@b.com", "otra", "Ana").
		Return(nil, domain.NewAuthError(domain.AuthCodeEmailInUse, "User already exists", nil)).Once()

	out := f.orch.Signup(context.Background(), dto.SignupRequest{Name: "Ana", Email: "ana@b.com", Password: "otra"})

	assert.Equal(t, signup.OutcomeConflict, out.Kind)
	assert.ErrorIs(t, out.Err, domain.ErrDuplicateIdentity)
	f.assertNoProvisioning(t)
}

func TestSignup_IdentidadExistenteReautenticada_Conflict(t *testing.T) {
	f := newFixture(t, time.Second)
	existing := newIdentity("uid-3", "ana@b.com")
	existing.AlreadyExists = true
	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "ana@b.com", "secret", "Ana").Return(existing, nil).Once()

	out := f.orch.Signup(context.Background(), dto.SignupRequest{Name: "Ana", Email: "ana@b.com", Password: "secret"})

	assert.Equal(t, signup.OutcomeConflict, out.Kind)
	assert.Equal(t, "uid-3", out.IdentityID)
	f.assertNoProvisioning(t)
	f.identities.AssertNumberOfCalls(t, "Create", 1)
}

func TestSignup_ErrorProveedor_FatalConCodigo(t *testing.T) {
	f := newFixture(t, time.Second)
	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "ana@b.com", "secret", "Ana").
		Return(nil, domain.NewAuthError(domain.AuthCodeOperationNotAllowed, "sign-up disabled", nil)).Once()

	out := f.orch.Signup(context.Background(), dto.SignupRequest{Name: "Ana", Email: "ana@b.com", Password: "secret"})

	assert.Equal(t, signup.OutcomeFatal, out.Kind)
	assert.Equal(t, signup.StateCreatingIdentity, out.State)
	assert.ErrorIs(t, out.Err, domain.ErrAuthProvider)
	assert.Equal(t, domain.AuthCodeOperationNotAllowed, domain.AuthCode(out.Err))
	f.assertNoProvisioning(t)
	assert.Equal(t, []signup.OutcomeKind{signup.OutcomeFatal}, f.metrics.outcomes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Degradación de pasos no fatales
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_TodosLosAdaptadoresFallan_Success(t *testing.T) {
	f := newFixture(t, time.Second)
	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "ana@b.com", "secret", "Ana").Return(newIdentity("uid-4", "ana@b.com"), nil).Once()
	f.templates.On("ExportTemplate", mock.Anything, tplOther).Return(nil, domain.ErrTemplateUnavailable).Once()
	f.orgs.On("CreateOrganization", mock.Anything, "Ana", widgetDflt).Return(nil, domain.ErrOrgProvisioningFailed).Once()
	rec := f.captureRecord(errBoom)

	out := f.orch.Signup(context.Background(), dto.SignupRequest{Name: "Ana", Email: "ana@b.com", Password: "secret"})

	require.Equal(t, signup.OutcomeSuccess, out.Kind)
	assert.Equal(t, "uid-4", out.IdentityID)
	assert.Equal(t, "uid-4", rec.IdentityID, "el record se intenta guardar aunque todo falle")
	assert.Nil(t, rec.Organization)
	assert.Nil(t, rec.Client)
	assert.Nil(t, rec.ClonedAgent)
	f.clients.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []signup.State{
		signup.StateProvisioningAgent,
		signup.StateProvisioningOrg,
		signup.StatePersisting,
	}, f.metrics.failures)
}

func TestSignup_OrgFalla_ClienteNoSeIntenta_AgenteSeConserva(t *testing.T) {
	f := newFixture(t, time.Second)
	export := exportOf(tplDrop)
	agent := &entity.ClonedAgent{ID: "agent-1", Name: "Dropshipper", SourceTemplateID: tplDrop}
	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "ana@b.com", "secret", "Ana").Return(newIdentity("uid-5", "ana@b.com"), nil).Once()
	f.templates.On("ExportTemplate", mock.Anything, tplDrop).Return(export, nil).Once()
	f.templates.On("ImportTemplate", mock.Anything, export, entity.BusinessDropshipper, tplDrop).Return(agent, nil).Once()
	f.orgs.On("CreateOrganization", mock.Anything, "Ana", "agent-1").Return(nil, domain.ErrOrgProvisioningFailed).Once()
	rec := f.captureRecord(nil)

	out := f.orch.Signup(context.Background(), dto.SignupRequest{
		Name: "Ana", Email: "ana@b.com", Password: "secret", BusinessType: "dropshipper",
	})

	require.Equal(t, signup.OutcomeSuccess, out.Kind)
	f.clients.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Nil(t, rec.Organization)
	assert.Nil(t, rec.Client)
	require.NotNil(t, rec.ClonedAgent)
	assert.Equal(t, "agent-1", rec.ClonedAgent.ID)
}

func TestSignup_ImportFalla_UsaWidgetPorDefecto(t *testing.T) {
	f := newFixture(t, time.Second)
	export := exportOf(tplTheme)
	org := &entity.Organization{ID: "org-2", Name: "Ana", WidgetIDs: []string{widgetDflt}}
	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "ana@b.com", "secret", "Ana").Return(newIdentity("uid-6", "ana@b.com"), nil).Once()
	f.templates.On("ExportTemplate", mock.Anything, tplTheme).Return(export, nil).Once()
	f.templates.On("ImportTemplate", mock.Anything, export, entity.BusinessThemePage, tplTheme).
		Return(nil, domain.ErrTemplateImportFailed).Once()
	f.orgs.On("CreateOrganization", mock.Anything, "Ana", widgetDflt).Return(org, nil).Once()
	f.clients.On("CreateClient", mock.Anything, "org-2", "Ana", "ana@b.com", "secret").
		Return(entity.NewClient("org-2", "Ana", "ana@b.com", "secret"), nil).Once()
	rec := f.captureRecord(nil)

	out := f.orch.Signup(context.Background(), dto.SignupRequest{
		Name: "Ana", Email: "ana@b.com", Password: "secret", BusinessType: "themePage",
	})

	require.Equal(t, signup.OutcomeSuccess, out.Kind)
	assert.Nil(t, rec.ClonedAgent)
	require.NotNil(t, rec.Organization)
	assert.Equal(t, []string{widgetDflt}, rec.Organization.WidgetIDs)
	assert.NotNil(t, rec.Client)
	f.orgs.AssertExpectations(t)
}

func TestSignup_OrgSinID_OmiteCliente(t *testing.T) {
	f := newFixture(t, time.Second)
	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "ana@b.com", "secret", "Ana").Return(newIdentity("uid-7", "ana@b.com"), nil).Once()
	f.templates.On("ExportTemplate", mock.Anything, tplOther).Return(nil, domain.ErrTemplateUnavailable).Once()
	f.orgs.On("CreateOrganization", mock.Anything, "Ana", widgetDflt).
		Return(&entity.Organization{Name: "Ana", WidgetIDs: []string{widgetDflt}}, nil).Once()
	rec := f.captureRecord(nil)

	out := f.orch.Signup(context.Background(), dto.SignupRequest{Name: "Ana", Email: "ana@b.com", Password: "secret"})

	require.Equal(t, signup.OutcomeSuccess, out.Kind)
	f.clients.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	require.NotNil(t, rec.Organization, "la organización confirmada sin ID queda registrada")
	assert.Empty(t, rec.Organization.ID)
	assert.Nil(t, rec.Client)
}

func TestSignup_ClienteFalla_RecordSinCliente(t *testing.T) {
	f := newFixture(t, time.Second)
	org := &entity.Organization{ID: "org-3", Name: "Ana", WidgetIDs: []string{widgetDflt}}
	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "ana@b.com", "secret", "Ana").Return(newIdentity("uid-8", "ana@b.com"), nil).Once()
	f.templates.On("ExportTemplate", mock.Anything, tplOther).Return(nil, domain.ErrTemplateUnavailable).Once()
	f.orgs.On("CreateOrganization", mock.Anything, "Ana", widgetDflt).Return(org, nil).Once()
	f.clients.On("CreateClient", mock.Anything, "org-3", "Ana", "ana@b.com", "secret").
		Return(nil, domain.ErrClientProvisioningFailed).Once()
	rec := f.captureRecord(nil)

	out := f.orch.Signup(context.Background(), dto.SignupRequest{Name: "Ana", Email: "ana@b.com", Password: "secret"})

	require.Equal(t, signup.OutcomeSuccess, out.Kind)
	require.NotNil(t, rec.Organization)
	assert.Equal(t, "org-3", rec.Organization.ID)
	assert.Nil(t, rec.Client)
	f.clients.AssertNumberOfCalls(t, "CreateClient", 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección de plantilla (fallback a "other")
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_SeleccionDePlantilla(t *testing.T) {
	cases := []struct {
		businessType string
		wantTemplate string
	}{
		{"dropshipper", tplDrop},
		{"themePage", tplTheme},
		{"influencer", tplInfl},
		{"other", tplOther},
		{"", tplOther},
		{"restaurante", tplOther},
	}
	for _, tc := range cases {
		t.Run("tipo="+tc.businessType, func(t *testing.T) {
			f := newFixture(t, time.Second)
			f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, nil).Once()
			f.identities.On("Create", mock.Anything, "ana@b.com", "secret", "Ana").Return(newIdentity("uid", "ana@b.com"), nil).Once()
			f.templates.On("ExportTemplate", mock.Anything, tc.wantTemplate).Return(nil, domain.ErrTemplateUnavailable).Once()
			f.orgs.On("CreateOrganization", mock.Anything, "Ana", widgetDflt).Return(nil, domain.ErrOrgProvisioningFailed).Once()
			f.captureRecord(nil)

			out := f.orch.Signup(context.Background(), dto.SignupRequest{
				Name: "Ana", Email: "ana@b.com", Password: "secret", BusinessType: tc.businessType,
			})

			require.Equal(t, signup.OutcomeSuccess, out.Kind)
			f.templates.AssertExpectations(t)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Timeouts y cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_TimeoutEnExport_Degrada(t *testing.T) {
	f := newFixture(t, 20*time.Millisecond)
	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "ana@b.com", "secret", "Ana").Return(newIdentity("uid-9", "ana@b.com"), nil).Once()
	f.templates.On("ExportTemplate", mock.Anything, tplOther).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done() // solo termina si el orquestador impone timeout
		}).
		Return(nil, context.DeadlineExceeded).Once()
	f.orgs.On("CreateOrganization", mock.Anything, "Ana", widgetDflt).Return(nil, domain.ErrOrgProvisioningFailed).Once()
	f.captureRecord(nil)

	out := f.orch.Signup(context.Background(), dto.SignupRequest{Name: "Ana", Email: "ana@b.com", Password: "secret"})

	assert.Equal(t, signup.OutcomeSuccess, out.Kind)
	assert.Contains(t, f.metrics.failures, signup.StateProvisioningAgent)
}

func TestSignup_CancelacionTrasIdentidad_NoCortaAprovisionamiento(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.identities.On("Exists", mock.Anything, "ana@b.com").Return(false, nil).Once()
	f.identities.On("Create", mock.Anything, "ana@b.com", "secret", "Ana").
		Run(func(mock.Arguments) { cancel() }). // el cliente HTTP se desconecta
		Return(newIdentity("uid-10", "ana@b.com"), nil).Once()
	f.templates.On("ExportTemplate", mock.Anything, tplOther).
		Run(func(args mock.Arguments) {
			assert.NoError(t, args.Get(0).(context.Context).Err(),
				"los pasos posteriores a la identidad no heredan la cancelación del request")
		}).
		Return(nil, domain.ErrTemplateUnavailable).Once()
	f.orgs.On("CreateOrganization", mock.Anything, "Ana", widgetDflt).Return(nil, domain.ErrOrgProvisioningFailed).Once()
	f.captureRecord(nil)

	out := f.orch.Signup(ctx, dto.SignupRequest{Name: "Ana", Email: "ana@b.com", Password: "secret"})

	assert.Equal(t, signup.OutcomeSuccess, out.Kind)
	f.records.AssertExpectations(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestTransiciones(t *testing.T) {
	assert.True(t, signup.CanTransition(signup.StateProvisioningOrg, signup.StateProvisioningClient))
	assert.True(t, signup.CanTransition(signup.StateProvisioningOrg, signup.StatePersisting))
	assert.False(t, signup.CanTransition(signup.StateProvisioningAgent, signup.StateProvisioningClient))
	assert.False(t, signup.CanTransition(signup.StateResponding, signup.StateValidatingInput))

	assert.True(t, signup.CanBeFatal(signup.StateValidatingInput))
	assert.True(t, signup.CanBeFatal(signup.StateCreatingIdentity))
	for _, s := range []signup.State{
		signup.StateCheckingDuplicate, signup.StateProvisioningAgent, signup.StateProvisioningOrg,
		signup.StateProvisioningClient, signup.StatePersisting, signup.StateResponding,
	} {
		assert.False(t, signup.CanBeFatal(s), "%s no debe poder terminar en Fatal", s)
	}
}
